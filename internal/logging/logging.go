// Package logging builds the slog logger used for run reporting.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Debug enables the command lines
// of external tool invocations.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
