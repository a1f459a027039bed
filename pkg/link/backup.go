package link

import (
	"path/filepath"

	"github.com/gibfahn/dot/pkg/errors"
)

// displace moves existing content out of the way into the backup tree at
// the same relative path. The content is renamed, not copied, so it
// survives byte for byte with its metadata.
func (l *Linker) displace(existing, rel, backupDir string) error {
	backupPath := filepath.Join(backupDir, rel)

	if err := l.fs.MkdirAll(filepath.Dir(backupPath), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create backup parent directory").
			WithDetail("path", filepath.Dir(backupPath))
	}

	l.logger.Warn().
		Str("from", existing).
		Str("to", backupPath).
		Msg("Moving existing content to backup")

	if err := l.fs.Rename(existing, backupPath); err != nil {
		return errors.Wrap(err, errors.ErrRename, "failed to move existing content to backup").
			WithDetail("from", existing).
			WithDetail("to", backupPath)
	}
	return nil
}
