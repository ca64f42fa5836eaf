// Package logger configures the process-wide zerolog instance. Output is
// structured JSON on stderr; set LOG_PRETTY=true for a human console writer
// during local development.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var Logger zerolog.Logger

func Init(level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)

	var out = os.Stderr
	base := log.Output(out)
	if strings.EqualFold(os.Getenv("LOG_PRETTY"), "true") {
		base = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}

	Logger = base.With().Timestamp().Str("service", "tradeflow").Logger()
}
