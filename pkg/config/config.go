package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	envprovider "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gibfahn/dot/pkg/env"
	"github.com/gibfahn/dot/pkg/errors"
	"github.com/gibfahn/dot/pkg/paths"
)

// envPrefix marks environment variables that override config values
const envPrefix = "DOT_"

// Config is the fully merged configuration
type Config struct {
	// InheritEnv lists process environment variables seeded into the
	// resolved environment; absent ones are skipped.
	InheritEnv []string `koanf:"inherit_env"`

	// Env is the raw key to value mapping; values may reference
	// inherited variables or other keys.
	Env map[string]string `koanf:"env"`

	Link     LinkSection     `koanf:"link"`
	Generate GenerateSection `koanf:"generate"`
}

// LinkSection configures the link run; paths may contain ~ and variable
// references until ResolveEnv expands them.
type LinkSection struct {
	FromDir   string `koanf:"from_dir"`
	ToDir     string `koanf:"to_dir"`
	BackupDir string `koanf:"backup_dir"`
}

// GenerateSection configures the generate tasks
type GenerateSection struct {
	Git []GitTaskSection `koanf:"git"`
}

// GitTaskSection configures one git generate task
type GitTaskSection struct {
	Path        string   `koanf:"path"`
	SearchPaths []string `koanf:"search_paths"`
	Excludes    []string `koanf:"excludes"`
}

// Load merges the embedded defaults, the config file at path (discovered
// via pkg/paths when path is empty, and skipped entirely if none exists)
// and DOT_-prefixed environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	explicit := path != ""
	if !explicit {
		path = paths.ConfigFile()
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if explicit {
				return nil, errors.Wrap(err, errors.ErrConfigLoad, "config file not readable").
					WithDetail("path", path)
			}
		} else if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse config file").
				WithDetail("path", path)
		}
	}

	if err := k.Load(envprovider.Provider(envPrefix, ".", envKeyToPath), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}
	return &cfg, nil
}

// parserFor picks the koanf parser matching the file extension,
// defaulting to TOML.
func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// envKeyToPath maps an override variable to its config key, e.g.
// DOT_LINK_FROM_DIR to link.from_dir. Keys under env keep their case
// since they name environment variables.
func envKeyToPath(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	switch {
	case strings.HasPrefix(s, "LINK_"):
		return "link." + strings.ToLower(strings.TrimPrefix(s, "LINK_"))
	case strings.HasPrefix(s, "ENV_"):
		return "env." + strings.TrimPrefix(s, "ENV_")
	default:
		return strings.ToLower(s)
	}
}

// ResolveEnv resolves the env table and expands every path-valued field
// in place. It returns the resolved environment mapping.
func (c *Config) ResolveEnv(r *env.Resolver) (map[string]string, error) {
	resolved, err := r.Resolve(c.InheritEnv, c.Env)
	if err != nil {
		return nil, err
	}

	for _, field := range []*string{&c.Link.FromDir, &c.Link.ToDir, &c.Link.BackupDir} {
		expanded, err := r.ExpandValue(*field, resolved)
		if err != nil {
			return nil, err
		}
		*field = expanded
	}

	for i := range c.Generate.Git {
		task := &c.Generate.Git[i]
		expanded, err := r.ExpandValue(task.Path, resolved)
		if err != nil {
			return nil, err
		}
		task.Path = expanded
		for j, searchPath := range task.SearchPaths {
			if expanded, err = r.ExpandValue(searchPath, resolved); err != nil {
				return nil, err
			}
			task.SearchPaths[j] = expanded
		}
	}

	return resolved, nil
}
