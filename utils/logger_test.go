package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{"debug": DEBUG, "INFO": INFO, "Warn": WARN, "error": ERROR} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoggerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WARN, &buf, LogFileOptions{})

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("INFO must be filtered at WARN level")
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "shown 2") {
		t.Errorf("unexpected log output %q", out)
	}

	l.SetLevel(DEBUG)
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("SetLevel should lower the threshold")
	}
}

func TestLoggerRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.log")
	var buf bytes.Buffer
	l := NewLogger(INFO, &buf, LogFileOptions{Path: path, MaxSizeMB: 1})
	l.Info("to file")
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestOutputName(t *testing.T) {
	name := OutputName("/data/coltrane.csv", "dashboard", ".png")
	if !strings.HasPrefix(name, "coltrane_dashboard_") || !strings.HasSuffix(name, ".png") {
		t.Errorf("unexpected output name %q", name)
	}
}
