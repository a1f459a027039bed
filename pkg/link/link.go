package link

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/gibfahn/dot/pkg/errors"
	"github.com/gibfahn/dot/pkg/logging"
	"github.com/gibfahn/dot/pkg/types"
)

// Linker reconciles one source tree into one target tree
type Linker struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Linker over the given filesystem
func New(fsys types.FS) *Linker {
	return &Linker{
		fs:     fsys,
		logger: logging.GetLogger("link"),
	}
}

// Link symlinks everything under cfg.FromDir into cfg.ToDir, moving any
// pre-existing content that would be overwritten into cfg.BackupDir.
// FromDir and ToDir must already exist; BackupDir is created on demand
// and removed again at the end if no backups were taken.
func (l *Linker) Link(cfg types.LinkConfig) (*types.LinkResult, error) {
	fromDir, err := l.resolveDirectory("from", cfg.FromDir)
	if err != nil {
		return nil, err
	}
	toDir, err := l.resolveDirectory("to", cfg.ToDir)
	if err != nil {
		return nil, err
	}

	if _, statErr := l.fs.Stat(cfg.BackupDir); statErr != nil {
		if !os.IsNotExist(statErr) {
			return nil, errors.Wrap(statErr, errors.ErrIO, "failed to stat backup dir").
				WithDetail("path", cfg.BackupDir)
		}
		l.logger.Debug().Str("path", cfg.BackupDir).Msg("Backup dir doesn't exist, creating it")
		if mkErr := l.fs.MkdirAll(cfg.BackupDir, 0o755); mkErr != nil {
			return nil, errors.Wrap(mkErr, errors.ErrDirCreate, "failed to create backup dir").
				WithDetail("path", cfg.BackupDir)
		}
	}
	backupDir, err := l.resolveDirectory("backup", cfg.BackupDir)
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("from", fromDir).
		Str("to", toDir).
		Str("backup", backupDir).
		Msg("Linking")

	entries, err := l.sourceEntries(fromDir)
	if err != nil {
		return nil, err
	}

	result := &types.LinkResult{}
	for _, rel := range entries {
		if err := l.createParentDir(toDir, rel, backupDir, result); err != nil {
			return nil, err
		}
		if err := l.ensureLink(filepath.Join(fromDir, rel), toDir, rel, backupDir, result); err != nil {
			return nil, err
		}
	}

	// Only an empty backup dir can be removed; a non-empty one simply
	// means backups were taken.
	if err := l.fs.Remove(backupDir); err != nil {
		l.logger.Info().Str("path", backupDir).Msg("Backup dir non-empty, check its contents")
	}

	return result, nil
}

// resolveDirectory ensures a directory exists and returns its canonical path
func (l *Linker) resolveDirectory(name, path string) (string, error) {
	info, err := l.fs.Stat(path)
	if err != nil || !info.IsDir() {
		return "", errors.Newf(errors.ErrMissingDir,
			"%s directory %q should exist and be a directory", name, path).
			WithDetail("name", name).
			WithDetail("path", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCanonicalize, "failed to make path absolute").
			WithDetail("path", path)
	}
	canonical, err := l.fs.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCanonicalize, "failed to canonicalize directory").
			WithDetail("path", path)
	}
	return canonical, nil
}

// createParentDir makes sure the parent directory for toDir/rel exists.
// When direct creation fails, some ancestor must exist as a non-directory:
// the ancestor chain is scanned from the immediate parent upward, blocking
// files are displaced into the backup tree and blocking symlinks removed,
// then creation is retried.
func (l *Linker) createParentDir(toDir, rel, backupDir string, result *types.LinkResult) error {
	parent := filepath.Dir(filepath.Join(toDir, rel))
	if err := l.fs.MkdirAll(parent, 0o755); err == nil {
		return nil
	}

	l.logger.Info().
		Str("path", parent).
		Msg("Failed to create parent dir, scanning ancestors for blocking entries")

	for _, ancestorRel := range ancestors(rel) {
		abs := filepath.Join(toDir, ancestorRel)
		info, err := l.fs.Lstat(abs)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Wrap(err, errors.ErrIO, "failed to inspect ancestor").
				WithDetail("path", abs)
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			// A link carries no unique content, remove it.
			l.logger.Warn().Str("path", abs).Msg("Removing symlink blocking parent directory")
			if rmErr := l.fs.Remove(abs); rmErr != nil {
				return errors.Wrap(rmErr, errors.ErrDelete, "failed to remove blocking symlink").
					WithDetail("path", abs)
			}
		case info.IsDir():
			continue
		case info.Mode().IsRegular():
			l.logger.Warn().
				Str("file", abs).
				Str("link", filepath.Join(toDir, rel)).
				Msg("File will be overwritten by parent directory of link")
			if err := l.displace(abs, ancestorRel, backupDir); err != nil {
				return err
			}
			result.Displaced = append(result.Displaced, ancestorRel)
		default:
			// Sockets, devices and the like cannot block MkdirAll
			// ancestors we care about; leave them alone.
			continue
		}
	}

	if err := l.fs.MkdirAll(parent, 0o755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create parent directory").
			WithDetail("path", parent)
	}
	return nil
}

// ancestors returns rel's ancestor paths from the immediate parent up to
// the root, excluding rel itself and ".".
func ancestors(rel string) []string {
	var out []string
	for p := filepath.Dir(rel); p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		out = append(out, p)
	}
	return out
}
