package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
)

func New(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.IsDev() {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "clinic-scheduler").
		Logger()
}
