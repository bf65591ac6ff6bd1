package logging

import (
	"io"
	"log/slog"
)

// Discard returns a logger that drops everything. Useful as a default when
// no logger is supplied.
func Discard() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
