package link

import (
	"path/filepath"

	"github.com/gibfahn/dot/pkg/errors"
)

// sourceEntries lists every non-directory entry under fromDir as a path
// relative to it, in recursive ReadDir order. Symlinks count as entries,
// not as directories to descend into.
func (l *Linker) sourceEntries(fromDir string) ([]string, error) {
	var entries []string

	var walk func(rel string) error
	walk = func(rel string) error {
		dirents, err := l.fs.ReadDir(filepath.Join(fromDir, rel))
		if err != nil {
			return errors.Wrap(err, errors.ErrIO, "failed to read source directory").
				WithDetail("path", filepath.Join(fromDir, rel))
		}
		for _, d := range dirents {
			childRel := filepath.Join(rel, d.Name())
			if d.IsDir() {
				if err := walk(childRel); err != nil {
					return err
				}
				continue
			}
			entries = append(entries, childRel)
		}
		return nil
	}

	if err := walk(""); err != nil {
		return nil, err
	}
	return entries, nil
}
