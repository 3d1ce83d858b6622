package util

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger writes prefixed diagnostic lines. It never writes to stdout so
// command output stays clean.
type Logger struct {
	mu     sync.Mutex
	file   *os.File
	logger *log.Logger
}

// NewLogger creates a logger that appends to filePath. When mirror is
// non-nil every line is also written there.
func NewLogger(filePath string, mirror io.Writer) (*Logger, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var out io.Writer = file
	if mirror != nil {
		out = io.MultiWriter(file, mirror)
	}

	return &Logger{
		file:   file,
		logger: log.New(out, "", log.LstdFlags),
	}, nil
}

// NewWriterLogger creates a logger on top of any writer
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{logger: log.New(w, "", log.LstdFlags)}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWriterLogger(io.Discard)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...any) {
	l.write("INFO: ", format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...any) {
	l.write("WARN: ", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...any) {
	l.write("ERROR: ", format, args...)
}

func (l *Logger) write(prefix, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetPrefix(prefix)
	l.logger.Printf(format, args...)
}

// Close closes the log file
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
