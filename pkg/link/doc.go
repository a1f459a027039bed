// Package link reconciles a source directory tree into a target tree of
// symlinks.
//
// Every non-directory entry under the source directory ends up as a
// symlink at the same relative path under the target directory. Anything
// already occupying a target path (or blocking a parent directory) is
// moved, never deleted, into a backup tree at the same relative path.
// Symlinks are the one exception: they carry no unique content and are
// removed outright. A run is idempotent and fail-fast; there is no
// rollback, whatever was linked or backed up before a failure stays.
package link
