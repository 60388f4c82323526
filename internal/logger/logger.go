package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Unknown levels fall back to info.
func New(level string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "service-scheduler").
		Logger()
}

// Console is a human-readable variant for local runs.
func Console(level string) zerolog.Logger {
	return New(level, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}
