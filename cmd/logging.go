package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/maxisme/releasefeed"
)

// ParseLogLevel reads "debug", "info", "warn" or "error"
func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
	return l, nil
}

// SetupLogger creates the structured logger of the commands and plugs it into the releasefeed package.
// verbose forces the debug level.
func SetupLogger(output io.Writer, level, format string, verbose bool) (*slog.Logger, error) {
	l, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		l = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level: l,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	logger := slog.New(handler)
	// the library logs are details: they only show up in debug
	releasefeed.SetLogger(slog.NewLogLogger(handler, slog.LevelDebug))
	return logger, nil
}
