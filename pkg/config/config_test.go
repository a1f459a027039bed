package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gibfahn/dot/pkg/env"
	"github.com/gibfahn/dot/pkg/errors"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// No config file anywhere: embedded defaults apply.
	t.Setenv("DOT_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load("")
	// The discovered path doesn't exist, and discovery is best-effort.
	require.NoError(t, err)
	assert.Equal(t, "~/code/dotfiles", cfg.Link.FromDir)
	assert.Equal(t, "~", cfg.Link.ToDir)
	assert.Equal(t, "~/backup", cfg.Link.BackupDir)
	assert.Contains(t, cfg.InheritEnv, "HOME")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "dot.toml", `
inherit_env = ["HOME"]

[env]
DOT_SOURCE = "~/src/dotfiles"

[link]
from_dir = "$DOT_SOURCE"

[[generate.git]]
path = "~/src/dotfiles/repos.toml"
search_paths = ["~/src"]
excludes = ["scratch"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "$DOT_SOURCE", cfg.Link.FromDir)
	// Unset keys keep their defaults.
	assert.Equal(t, "~", cfg.Link.ToDir)
	assert.Equal(t, []string{"HOME"}, cfg.InheritEnv)
	assert.Equal(t, map[string]string{"DOT_SOURCE": "~/src/dotfiles"}, cfg.Env)
	require.Len(t, cfg.Generate.Git, 1)
	assert.Equal(t, []string{"~/src"}, cfg.Generate.Git[0].SearchPaths)
	assert.Equal(t, []string{"scratch"}, cfg.Generate.Git[0].Excludes)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "dot.yaml", `
link:
  from_dir: /srv/dotfiles
  backup_dir: /srv/backup
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/dotfiles", cfg.Link.FromDir)
	assert.Equal(t, "/srv/backup", cfg.Link.BackupDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "dot.toml", `
[link]
from_dir = "/from/file"
`)
	t.Setenv("DOT_LINK_FROM_DIR", "/from/env")
	t.Setenv("DOT_ENV_EXTRA", "extra-value")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Link.FromDir)
	assert.Equal(t, "extra-value", cfg.Env["EXTRA"])
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "dot.toml", "[link\nbroken")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestEnvKeyToPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DOT_LINK_FROM_DIR", "link.from_dir"},
		{"DOT_LINK_BACKUP_DIR", "link.backup_dir"},
		{"DOT_ENV_MY_VAR", "env.MY_VAR"},
		{"DOT_INHERIT_ENV", "inherit_env"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, envKeyToPath(tt.in), tt.in)
	}
}

func TestResolveEnv(t *testing.T) {
	cfg := &Config{
		InheritEnv: []string{"HOME"},
		Env:        map[string]string{"DOT_SOURCE": "~/src"},
		Link: LinkSection{
			FromDir:   "$DOT_SOURCE/dotfiles",
			ToDir:     "~",
			BackupDir: "$HOME/backup",
		},
		Generate: GenerateSection{Git: []GitTaskSection{{
			Path:        "$DOT_SOURCE/repos.toml",
			SearchPaths: []string{"~/src", "$DOT_SOURCE"},
		}}},
	}

	r := env.NewResolverWith(func(name string) (string, bool) {
		if name == "HOME" {
			return "/home/test", true
		}
		return "", false
	}, "/home/test")

	resolved, err := cfg.ResolveEnv(r)
	require.NoError(t, err)
	assert.Equal(t, "/home/test/src", resolved["DOT_SOURCE"])
	assert.Equal(t, "/home/test/src/dotfiles", cfg.Link.FromDir)
	assert.Equal(t, "/home/test", cfg.Link.ToDir)
	assert.Equal(t, "/home/test/backup", cfg.Link.BackupDir)
	assert.Equal(t, "/home/test/src/repos.toml", cfg.Generate.Git[0].Path)
	assert.Equal(t, []string{"/home/test/src", "/home/test/src"}, cfg.Generate.Git[0].SearchPaths)
}

func TestResolveEnv_PropagatesCycle(t *testing.T) {
	cfg := &Config{Env: map[string]string{"A": "$B", "B": "$A"}}
	r := env.NewResolverWith(func(string) (string, bool) { return "", false }, "/home/test")

	_, err := cfg.ResolveEnv(r)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEnvCycle))
}
