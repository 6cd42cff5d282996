package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. level overrides the environment default
// (debug outside production, info in production) when it parses.
func New(environment string, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    environment == "production",
	}

	logger := zerolog.New(output).With().
		Timestamp().
		Str("env", environment).
		Str("service", "auth").
		Logger()

	globalLevel := zerolog.DebugLevel
	if environment == "production" {
		globalLevel = zerolog.InfoLevel
	}
	if parsed, err := zerolog.ParseLevel(level); err == nil && level != "" {
		globalLevel = parsed
	}
	zerolog.SetGlobalLevel(globalLevel)

	return logger
}
