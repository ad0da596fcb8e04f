// Package logging builds the application's *slog.Logger from config.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/sakif/ideaforge/internal/config"
)

// New returns a logger writing to w at the configured level and format.
// Unknown values fall back to info and text; config.Validate rejects them
// before this is normally reached.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
