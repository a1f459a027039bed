package types

// LinkConfig holds the resolved directory triple for a link run.
// All three paths must already have variables and ~ expanded.
type LinkConfig struct {
	// FromDir is the source tree, e.g. ~/code/dotfiles
	FromDir string
	// ToDir is the target tree the symlinks are written into, e.g. ~
	ToDir string
	// BackupDir receives any displaced pre-existing content
	BackupDir string
}

// LinkResult summarizes the filesystem mutations of one link run
type LinkResult struct {
	// Linked lists the relative paths for which a new symlink was written
	Linked []string
	// AlreadyLinked lists entries whose symlink was already correct
	AlreadyLinked []string
	// Displaced lists relative paths of pre-existing content moved into
	// the backup tree
	Displaced []string
}

// Mutated reports whether the run changed anything on disk
func (r *LinkResult) Mutated() bool {
	return len(r.Linked) > 0 || len(r.Displaced) > 0
}
