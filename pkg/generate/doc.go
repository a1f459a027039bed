// Package generate snapshots existing state into dot config files.
//
// The git generator scans search paths for git repositories and writes
// their paths, current branches and remotes to a TOML task file, so a
// machine's checkout layout can be reproduced elsewhere.
package generate
