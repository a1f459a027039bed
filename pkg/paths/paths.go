// Package paths provides centralized path handling for dot.
// It implements XDG Base Directory lookups for the config file and
// carries the default directory triple for link runs.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfig overrides the config file location
	EnvConfig = "DOT_CONFIG"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories, in their unexpanded ~ forms. These feed the
// embedded config defaults and the link command's flag defaults; the
// expansion happens in pkg/env.
const (
	// DefaultFromDir is where dotfiles are expected to live
	DefaultFromDir = "~/code/dotfiles"

	// DefaultToDir is where the symlinks are written
	DefaultToDir = "~"

	// DefaultBackupDir receives displaced content
	DefaultBackupDir = "~/backup"
)

// Config file names searched, in order, in the XDG config dir and the
// current directory.
var configFileNames = []string{"dot.toml", ".dot.toml", "dot.yaml", "dot.yml"}

// ConfigFile returns the config file to load, or "" if none exists.
// DOT_CONFIG wins when set; otherwise the XDG config dir and the current
// directory are searched.
func ConfigFile() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	return findConfigFile([]string{filepath.Join(xdg.ConfigHome, "dot"), "."})
}

// LogFile returns the log file path under the XDG state dir.
func LogFile() string {
	return filepath.Join(xdg.StateHome, "dot", "dot.log")
}

func findConfigFile(dirs []string) string {
	for _, dir := range dirs {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}
