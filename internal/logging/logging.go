package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. DEV gets a human readable console writer,
// any other environment gets JSON lines.
func Setup(env string, debug bool) {
	log.Logger = New(os.Stderr, env, debug)
	zerolog.SetGlobalLevel(level(debug))
}

// New builds a logger writing to w without touching the global logger.
func New(w io.Writer, env string, debug bool) zerolog.Logger {
	if env == "DEV" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level(debug)).With().Timestamp().Logger()
}

func level(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
