// Package logger writes timestamped, level-filtered diagnostics to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	levelDebug int = iota
	levelInfo
	levelWarn
	levelError
)

// ConsoleLogger logs messages as "[HH:MM:SS] [LEVEL] message".
// Level names are colored when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	level       int
	mu          sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// New creates a ConsoleLogger. A nil writer discards everything; an unknown
// level falls back to info.
func New(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		level:       levelToInt(NormalizeLevel(level)),
		colorOutput: isTerminal(w),
		now:         time.Now,
	}
}

// NormalizeLevel lower-cases level and maps unknown values to "info".
func NormalizeLevel(level string) string {
	switch v := strings.ToLower(strings.TrimSpace(level)); v {
	case "debug", "info", "warn", "error":
		return v
	case "warning":
		return "warn"
	default:
		return "info"
	}
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func levelToInt(level string) int {
	switch level {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (l *ConsoleLogger) Debugf(format string, args ...any) { l.logf(levelDebug, "DEBUG", format, args...) }
func (l *ConsoleLogger) Infof(format string, args ...any)  { l.logf(levelInfo, "INFO", format, args...) }
func (l *ConsoleLogger) Warnf(format string, args ...any)  { l.logf(levelWarn, "WARN", format, args...) }
func (l *ConsoleLogger) Errorf(format string, args ...any) { l.logf(levelError, "ERROR", format, args...) }

func (l *ConsoleLogger) logf(level int, name, format string, args ...any) {
	if l == nil || l.writer == nil || level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.now().Format("15:04:05")
	label := name
	if l.colorOutput {
		c := levelColor(name)
		// color.NoColor は stdout 基準なので、stderr が端末なら明示的に有効化する
		c.EnableColor()
		label = c.Sprint(name)
	}
	_, _ = fmt.Fprintf(l.writer, "[%s] [%s] %s\n", ts, label, msg)
}

func levelColor(name string) *color.Color {
	switch name {
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}
