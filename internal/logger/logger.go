package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Fields carries structured key/value pairs for a log line
type Fields map[string]interface{}

var (
	mu      sync.RWMutex
	current = newLogger(os.Stderr, slog.LevelInfo)
)

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", "expotrack")
}

// Configure replaces the output and minimum level ("debug", "info", "warn", "error")
func Configure(w io.Writer, level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	mu.Lock()
	current = newLogger(w, l)
	mu.Unlock()
}

func Debug(message string, fields Fields) {
	log(slog.LevelDebug, message, fields)
}

func Info(message string, fields Fields) {
	log(slog.LevelInfo, message, fields)
}

func Warn(message string, fields Fields) {
	log(slog.LevelWarn, message, fields)
}

func Error(message string, fields Fields) {
	log(slog.LevelError, message, fields)
}

func log(level slog.Level, message string, fields Fields) {
	mu.RLock()
	l := current
	mu.RUnlock()

	attrs := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	l.Log(context.Background(), level, message, attrs...)
}
