// Package logger builds the zerolog logger shared by the server.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger writing to w at the given level. Unknown levels fall
// back to info. When pretty is set the output is human readable instead of JSON.
func New(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "brvalida").Logger()
}

// Setup builds the process logger on stderr and installs it as the global
// zerolog logger used by packages that log through zerolog/log.
func Setup(level string, pretty bool) zerolog.Logger {
	l := New(os.Stderr, level, pretty)
	log.Logger = l
	zerolog.DefaultContextLogger = &l
	return l
}
