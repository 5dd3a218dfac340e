// Package log provides structured logging for pinchvol.
// It wraps slog with a stdout handler and an optional rotating log file.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/natefinch/lumberjack"
)

// Rotation limits for the log file.
const (
	MaxFileSizeMB = 10
	MaxBackups    = 3
	MaxAgeDays    = 14
)

var (
	logger *slog.Logger
	file   *lumberjack.Logger
	once   sync.Once
)

// Init initializes the global logger with the specified level.
// Valid levels: "debug", "info", "warn", "error".
// When path is non-empty, records are also written to a rotating file.
func Init(level, path string) {
	once.Do(func() {
		var out io.Writer = os.Stdout
		if path != "" {
			file = &lumberjack.Logger{
				Filename:   path,
				MaxSize:    MaxFileSizeMB,
				MaxBackups: MaxBackups,
				MaxAge:     MaxAgeDays,
			}
			out = io.MultiWriter(os.Stdout, file)
		}

		logger = New(out, level)
		slog.SetDefault(logger)
	})
}

// New builds a logger writing to out at the given level.
// JSON is used when GO_ENV=production, text otherwise.
func New(out io.Writer, level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	if os.Getenv("GO_ENV") == "production" {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// ParseLevel converts a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Close flushes and closes the log file, if any.
func Close() error {
	if file == nil {
		return nil
	}
	return file.Close()
}

// L returns the global logger instance.
func L() *slog.Logger {
	if logger == nil {
		Init("info", "")
	}
	return logger
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	L().Error(msg, args...)
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}
