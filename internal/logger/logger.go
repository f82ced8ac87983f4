package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/viewer.txt"

// maxLines caps the in-memory history shown by the console. The file keeps everything.
const maxLines = 500

// Level tags a log line.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger stores lines of text in memory (for the console) and appends them to a file on disk.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
	now   func() time.Time
}

// New returns a Logger writing to path (LogFilePath when empty) and ensures its directory exists.
func New(path string) *Logger {
	if path == "" {
		path = LogFilePath
	}
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	return &Logger{path: path, lines: make([]string, 0), now: time.Now}
}

// Path returns the log file path.
func (l *Logger) Path() string { return l.path }

// Log appends a line as-is (console echo). Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	l.write("[" + l.now().Format("2006-01-02 15:04:05") + "] " + line)
}

// Info logs a formatted informational message.
func (l *Logger) Info(format string, args ...any) { l.leveled(LevelInfo, format, args...) }

// Warn logs a degraded path the viewer recovered from.
func (l *Logger) Warn(format string, args ...any) { l.leveled(LevelWarn, format, args...) }

// Error logs a failure.
func (l *Logger) Error(format string, args ...any) { l.leveled(LevelError, format, args...) }

func (l *Logger) leveled(level Level, format string, args ...any) {
	ts := l.now().Format("2006-01-02 15:04:05")
	l.write(fmt.Sprintf("[%s] %s %s", ts, level, fmt.Sprintf(format, args...)))
}

func (l *Logger) write(stamped string) {
	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
	l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
