package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/gitsentry/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelParsing(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLevel zerolog.Level
		wantErr   bool
	}{
		{name: "debug", level: "debug", wantLevel: zerolog.DebugLevel},
		{name: "warn", level: "warn", wantLevel: zerolog.WarnLevel},
		{name: "empty falls back to default", level: "", wantLevel: zerolog.InfoLevel},
		{name: "mixed case accepted", level: "ERROR", wantLevel: zerolog.ErrorLevel},
		{name: "unknown level rejected", level: "chatty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewDefaultLogConfig()
			cfg.LogLevel = tt.level

			log, err := New(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, log.GetLevel())
		})
	}
}

func TestNew_WritesLogFile(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "gitsentry.log")
	cfg.LogFormat = "json"

	log, err := New(cfg)
	require.NoError(t, err, "missing log directory must be created")

	log.Info().Str("module", "test").Msg("probe")

	content, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"probe"`)
	assert.Contains(t, string(content), `"module":"test"`)
}
