package webapi

import (
	"log/slog"
	"strings"
)

// slogWriter forwards fiber access log lines to a slog.Logger.
type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Write(p []byte) (int, error) {
	w.logger.Info(strings.TrimRight(string(p), "\n"), "component", "http")
	return len(p), nil
}
