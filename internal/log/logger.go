// Package log builds the process-wide zerolog logger.
package log

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console logger at the given level. Unknown or empty level
// strings fall back to info.
func New(level string) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).Level(lvl).With().Timestamp().Logger()

	return &logger
}
