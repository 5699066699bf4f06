package utils

import (
	"log/slog"
	"os"
	"sync/atomic"
)

var (
	level   = new(slog.LevelVar)
	verbose atomic.Bool
	logger  = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
)

func Logger() *slog.Logger {
	return logger
}

// SetVerbose switches debug logging and fatal stack traces on or off.
func SetVerbose(v bool) {
	verbose.Store(v)
	if v {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

func Verbose() bool {
	return verbose.Load()
}
