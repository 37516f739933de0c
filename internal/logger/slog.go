package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// SlogLogger adapts Logger to log/slog for long-running processes such as
// the HTTP server, where spinner output makes no sense.
type SlogLogger struct {
	log *slog.Logger
}

// ParseLevel maps DEBUG/INFO/WARN/ERROR (case-insensitive) to a slog level,
// defaulting to Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewSlogLogger writes text records at or above level to w.
func NewSlogLogger(w io.Writer, level slog.Level) *SlogLogger {
	lv := new(slog.LevelVar)
	lv.Set(level)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})
	return &SlogLogger{log: slog.New(handler)}
}

// Slog exposes the underlying slog logger.
func (l *SlogLogger) Slog() *slog.Logger { return l.log }

func (l *SlogLogger) Logf(format string, args ...interface{}) {
	l.log.Info(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

func (l *SlogLogger) Log(msg string) {
	l.log.Info(strings.TrimSuffix(msg, "\n"))
}
