package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFile_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/dot/dot.toml")
	assert.Equal(t, "/etc/dot/dot.toml", ConfigFile())
}

func TestLogFile(t *testing.T) {
	logFile := LogFile()
	assert.True(t, filepath.IsAbs(logFile))
	assert.Equal(t, "dot.log", filepath.Base(logFile))
	assert.Equal(t, "dot", filepath.Base(filepath.Dir(logFile)))
}

func TestFindConfigFile(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, ".dot.toml"), []byte(""), 0o644))

	tests := []struct {
		name  string
		setup func(t *testing.T)
		dirs  []string
		want  string
	}{
		{
			name: "earlier_dir_wins",
			setup: func(t *testing.T) {
				require.NoError(t, os.WriteFile(filepath.Join(first, "dot.toml"), []byte(""), 0o644))
			},
			dirs: []string{first, second},
			want: filepath.Join(first, "dot.toml"),
		},
		{
			name:  "falls_through_to_later_dir",
			setup: func(t *testing.T) {},
			dirs:  []string{filepath.Join(first, "missing"), second},
			want:  filepath.Join(second, ".dot.toml"),
		},
		{
			name:  "none_found",
			setup: func(t *testing.T) {},
			dirs:  []string{filepath.Join(first, "missing")},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			assert.Equal(t, tt.want, findConfigFile(tt.dirs))
		})
	}
}
