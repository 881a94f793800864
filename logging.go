package site

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns the process logger described by cfg: a console writer in
// console format, JSON lines otherwise.
func NewLogger(cfg SiteConfig, w io.Writer) zerolog.Logger {
	cfg.setDefaults()
	if w == nil {
		w = os.Stderr
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
