package testutil

import (
	"io/fs"

	"github.com/gibfahn/dot/pkg/types"
)

// FaultFS wraps a types.FS and fails selected operations on selected
// paths. Operations are named after the FS methods ("Rename", "Symlink",
// "MkdirAll", ...); for Rename the old path is matched.
type FaultFS struct {
	types.FS
	faults map[faultKey]error
}

type faultKey struct {
	op   string
	path string
}

// NewFaultFS wraps base with an empty fault table
func NewFaultFS(base types.FS) *FaultFS {
	return &FaultFS{
		FS:     base,
		faults: make(map[faultKey]error),
	}
}

// FailWith makes the given operation on the given path return err
func (f *FaultFS) FailWith(op, path string, err error) *FaultFS {
	f.faults[faultKey{op: op, path: path}] = err
	return f
}

func (f *FaultFS) fault(op, path string) error {
	return f.faults[faultKey{op: op, path: path}]
}

func (f *FaultFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.fault("Stat", name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.fault("Lstat", name); err != nil {
		return nil, err
	}
	return f.FS.Lstat(name)
}

func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.fault("MkdirAll", path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.fault("ReadDir", name); err != nil {
		return nil, err
	}
	return f.FS.ReadDir(name)
}

func (f *FaultFS) Symlink(oldname, newname string) error {
	if err := f.fault("Symlink", newname); err != nil {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FaultFS) Readlink(name string) (string, error) {
	if err := f.fault("Readlink", name); err != nil {
		return "", err
	}
	return f.FS.Readlink(name)
}

func (f *FaultFS) Remove(name string) error {
	if err := f.fault("Remove", name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err := f.fault("Rename", oldpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}
