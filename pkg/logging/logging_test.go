package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger_VerbosityLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default_warn", 0, zerolog.WarnLevel},
		{"verbose_info", 1, zerolog.InfoLevel},
		{"very_verbose_debug", 2, zerolog.DebugLevel},
		{"trace", 3, zerolog.TraceLevel},
		{"beyond_trace", 10, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupLogger(tt.verbosity)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestGetLogger_ComponentField(t *testing.T) {
	logger := GetLogger("link")
	// The returned logger must be usable without further setup.
	logger.Debug().Msg("component logger works")
}
