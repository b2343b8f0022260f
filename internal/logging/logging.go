package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/payflow/balance-service/internal/config"
)

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// NewLogger creates a new Logger instance based on the provided configuration.
// Only the "slog" type is implemented; config validation rejects anything else.
func NewLogger(cfg *config.Config) Logger {
	switch cfg.LogType {
	case config.SlogLoggerType:
		return newSlogLogger(cfg)
	default:
		panic("unsupported logger type: " + cfg.LogType)
	}
}

// NewLoggerWithWriter creates a JSON slog Logger writing to w at the given level.
func NewLoggerWithWriter(w io.Writer, level string) Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &SlogLogger{logger: slog.New(handler)}
}

// SlogLogger wraps an slog.Logger to implement the Logger interface.
type SlogLogger struct {
	logger *slog.Logger
}

// newSlogLogger creates a new SlogLogger writing to the log file when LogToFile
// is set, otherwise to stderr. Stdout is left to the startup line.
func newSlogLogger(cfg *config.Config) Logger {
	var writer io.Writer = os.Stderr
	if cfg.LogToFile {
		writer = setupFileWriter(cfg.LogFile)
	}

	return NewLoggerWithWriter(writer, cfg.LogLevel)
}

// setupFileWriter creates a file writer for logging.
// It ensures the log directory exists and opens the file in append mode.
// If the file cannot be opened, it logs an error and returns os.Stderr.
func setupFileWriter(logFile string) io.Writer {
	logDir := filepath.Dir(logFile)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		slog.Error("Failed to create log directory", "error", err, "path", logDir)
		return os.Stderr
	}

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Error("Failed to open log file", "error", err, "path", logFile)
		return os.Stderr
	}

	return file
}

func parseLevel(level string) slog.Level {
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

// Debug logs a message at Debug level with optional key-value pairs.
func (l *SlogLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

// Info logs a message at Info level with optional key-value pairs.
func (l *SlogLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

// Warn logs a message at Warn level with optional key-value pairs.
func (l *SlogLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

// Error logs a message at Error level with optional key-value pairs.
func (l *SlogLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}
