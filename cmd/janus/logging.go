package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"

	"github.com/janus-lang/janus/pkg/prettyprint"
)

// newLogger builds the shell's slog.Logger: a colourised tint handler
// for interactive sessions (mirroring the teacher's main.go slog setup,
// swapped from a plain TextHandler to tint's per SPEC_FULL's ambient
// stack), or a plain JSON handler under --json-logs for piped/CI use.
func newLogger(debug, jsonLogs bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !prettyprint.ColorEnabled(),
		})
	}
	logger := slog.New(handler)
	if debug {
		logger = logger.With("session", uuid.New().String())
	}
	return logger
}
