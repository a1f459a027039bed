// Package config loads dot's configuration.
//
// Three layers are merged, later layers winning: embedded defaults, an
// optional config file (dot.toml or dot.yaml, discovered via pkg/paths
// or named explicitly), and DOT_-prefixed environment variables
// (e.g. DOT_LINK_FROM_DIR overrides link.from_dir).
package config
