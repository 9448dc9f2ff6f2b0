package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards everything. Every service
// constructor takes a *slog.Logger, so test suites pass this one.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
