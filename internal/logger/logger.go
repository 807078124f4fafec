package logger

import (
	"io"
	"log/slog"
	"os"
)

const serviceName = "bakeryd"

// New creates the process wide slog.Logger writing JSON to stdout.
func New() *slog.Logger {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter builds a JSON logger over the given sink, tagged with the
// service name so aggregated log streams stay attributable.
func NewWithWriter(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", serviceName))
}
