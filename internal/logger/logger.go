package logger

import (
	"io"
	stdlog "log" // Standard Go log package, aliased to avoid conflict with zerolog field
	"strings"

	"github.com/aleister1102/gitsentry/internal/config"
	"github.com/rs/zerolog"
)

// New creates a zerolog logger from the log configuration. Console output
// always goes to stderr so hook invocations never pollute content that git
// consumes on stdout; file output is optional and rotated.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}

	writers := []io.Writer{newConsoleWriter(cfg.LogFormat)}
	if cfg.LogFile != "" {
		fileWriter, err := newFileWriter(cfg)
		if err != nil {
			return zerolog.Logger{}, err
		}
		writers = append(writers, fileWriter)
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multiWriter).
		Level(level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(level)
	configureStandardLog(logger)

	return logger, nil
}

// parseLevel converts the configured level string to a zerolog level.
func parseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		level = config.DefaultLogLevel
	}
	return zerolog.ParseLevel(strings.ToLower(level))
}

// configureStandardLog routes the standard Go log package through zerolog
func configureStandardLog(logger zerolog.Logger) {
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)
}
