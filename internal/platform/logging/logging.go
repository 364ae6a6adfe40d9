// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds a logger writing to w. Format "json" writes one JSON object per
// line; anything else writes human-readable console output. Unknown levels
// fall back to info.
func New(w io.Writer, format, level string) zerolog.Logger {
	if !strings.EqualFold(format, "json") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Setup installs a stdout logger as the global log.Logger and returns it.
func Setup(format, level string) zerolog.Logger {
	l := New(os.Stdout, format, level)
	log.Logger = l
	return l
}
