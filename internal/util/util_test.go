package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 5, "trun…"},
		{"héllo wörld", 6, "héllo…"},
		{"anything", 0, "anything"},
		{"ab", 1, "…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestSingleLineAndPlaceholder(t *testing.T) {
	if got := SingleLine("a\nb\r\nc"); got != "a b  c" {
		t.Errorf("SingleLine() = %q", got)
	}
	if got := OrPlaceholder("  ", "(none)"); got != "(none)" {
		t.Errorf("OrPlaceholder() = %q", got)
	}
	if got := FormatTime(time.Time{}); got != "-" {
		t.Errorf("FormatTime(zero) = %q", got)
	}
}

func TestLoggerPrefixes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf)

	logger.Info("GET %s", "/projects/")
	logger.Error("boom: %v", "bad")

	out := buf.String()
	if !strings.Contains(out, "INFO: ") || !strings.Contains(out, "GET /projects/") {
		t.Errorf("missing info line in %q", out)
	}
	if !strings.Contains(out, "ERROR: ") || !strings.Contains(out, "boom: bad") {
		t.Errorf("missing error line in %q", out)
	}
}

func TestFileLoggerMirrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskflow.log")
	var mirror bytes.Buffer

	logger, err := NewLogger(path, &mirror)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Warn("careful")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "WARN: ") {
		t.Errorf("log file missing warning: %q", data)
	}
	if !strings.Contains(mirror.String(), "careful") {
		t.Errorf("mirror missing warning: %q", mirror.String())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("ignored")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() on nil logger error = %v", err)
	}
}
