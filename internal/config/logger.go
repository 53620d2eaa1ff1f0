package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates the application logger from the logging configuration.
// Unknown levels fall back to info.
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out = os.Stdout
	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}

	return zerolog.New(out).With().Timestamp().Logger()
}
