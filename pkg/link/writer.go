package link

import (
	"os"
	"path/filepath"

	"github.com/gibfahn/dot/pkg/errors"
	"github.com/gibfahn/dot/pkg/types"
)

// ensureLink makes toDir/rel a symlink pointing at sourcePath. A correct
// existing link is left alone; a wrong or broken link is removed; a file
// or directory in the way is displaced into the backup tree first.
func (l *Linker) ensureLink(sourcePath, toDir, rel, backupDir string, result *types.LinkResult) error {
	targetPath := filepath.Join(toDir, rel)

	info, err := l.fs.Lstat(targetPath)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink != 0:
		existing, rlErr := l.fs.Readlink(targetPath)
		if rlErr != nil {
			return errors.Wrap(rlErr, errors.ErrIO, "failed to read existing link target").
				WithDetail("path", targetPath)
		}
		if existing == sourcePath {
			l.logger.Debug().
				Str("path", targetPath).
				Str("target", existing).
				Msg("Link already correct, skipping")
			result.AlreadyLinked = append(result.AlreadyLinked, rel)
			return nil
		}
		// Wrong target, or dangling. Either way the link itself holds
		// no content worth keeping.
		l.logger.Warn().
			Str("path", targetPath).
			Str("old", existing).
			Str("new", sourcePath).
			Msg("Replacing existing link")
		if rmErr := l.fs.Remove(targetPath); rmErr != nil {
			return errors.Wrap(rmErr, errors.ErrDelete, "failed to remove existing link").
				WithDetail("path", targetPath)
		}

	case err == nil && info.IsDir():
		l.logger.Warn().
			Str("path", targetPath).
			Str("backup", backupDir).
			Msg("Expected file or link, found directory, moving to backup")
		if err := l.displace(targetPath, rel, backupDir); err != nil {
			return err
		}
		result.Displaced = append(result.Displaced, rel)

	case err == nil:
		l.logger.Warn().
			Str("path", targetPath).
			Str("backup", backupDir).
			Msg("Existing file, moving to backup")
		if err := l.displace(targetPath, rel, backupDir); err != nil {
			return err
		}
		result.Displaced = append(result.Displaced, rel)

	case os.IsNotExist(err):
		// Nothing in the way.

	default:
		return errors.Wrap(err, errors.ErrIO, "failed to inspect link target path").
			WithDetail("path", targetPath)
	}

	if err := l.fs.Symlink(sourcePath, targetPath); err != nil {
		return errors.Wrap(err, errors.ErrSymlink, "failed to create symlink").
			WithDetail("from", sourcePath).
			WithDetail("to", targetPath)
	}
	l.logger.Info().
		Str("from", sourcePath).
		Str("to", targetPath).
		Msg("Linked")
	result.Linked = append(result.Linked, rel)
	return nil
}
