// Package logger provides the configured zerolog logger.
package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// New returns a console logger on w; debug lowers the level to Debug.
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}).Level(level).With().Timestamp().Logger()
}
