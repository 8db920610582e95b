package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New creates the process-wide JSON logger. Setting LOG_LEVEL=debug lowers
// the threshold; any other value keeps info.
func New() *slog.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
