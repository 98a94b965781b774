package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds the application logger.  In dev the output is the
// human-readable console writer; everywhere else structured JSON goes
// to stdout.  LOG_LEVEL overrides the default info level.  The global
// zerolog/log logger is set too, for packages that do not carry a
// logger of their own.
func New(env string) zerolog.Logger {
	level := zerolog.InfoLevel
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		if l, err := zerolog.ParseLevel(s); err == nil {
			level = l
		}
	}

	var l zerolog.Logger
	if env == "dev" {
		cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		l = zerolog.New(cw)
	} else {
		l = zerolog.New(os.Stdout)
	}
	l = l.Level(level).With().Timestamp().Logger()
	log.Logger = l
	return l
}
