package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		result := ParseLogLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "mousemark"})

	logger.WithFields(map[string]any{"b": 2, "a": 1}).Info("drew %d marks", 3)

	line := buf.String()
	if !strings.Contains(line, "[INFO] mousemark: drew 3 marks {a=1, b=2}") {
		t.Errorf("unexpected log line %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("log line should end with a newline")
	}
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("debug")
	logger.Info("info")
	if buf.Len() != 0 {
		t.Errorf("messages below level were written: %q", buf.String())
	}

	logger.Warn("warn")
	logger.Error("error")
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("wrote %d lines, want 2", got)
	}
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf})
	child := root.WithComponent("mark")

	child.Info("hidden")
	root.SetLevel(LogLevelDebug)
	child.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown {component=mark}") {
		t.Errorf("unexpected output %q", out)
	}
	if child.Level() != LogLevelDebug {
		t.Errorf("child.Level() = %v, want DEBUG", child.Level())
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	root := NewLogger(LoggerConfig{Output: &buf})
	_ = root.WithField("session", "x")

	root.Info("plain")
	if strings.Contains(buf.String(), "session") {
		t.Errorf("parent picked up child field: %q", buf.String())
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Output: &buf})

	logger.Disable()
	logger.Error("nope")
	logger.Enable()
	logger.Error("yes")

	if strings.Contains(buf.String(), "nope") || !strings.Contains(buf.String(), "yes") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Error("discarded")
	NullLogger.WithField("k", "v").Warn("discarded")
}

func TestOpenLogFile(t *testing.T) {
	w, closeFn, err := OpenLogFile("")
	if err != nil || w != os.Stderr {
		t.Errorf("OpenLogFile(\"\") = %v, %v, want stderr", w, err)
	}
	_ = closeFn()

	path := filepath.Join(t.TempDir(), "mousemark.log")
	w, closeFn, err = OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile failed: %v", err)
	}
	NewLogger(LoggerConfig{Output: w}).Info("to file")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(data), "to file") {
		t.Errorf("log file content = %q, %v", data, err)
	}

	if _, _, err := OpenLogFile(filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Error("OpenLogFile in a missing directory should fail")
	}
}
