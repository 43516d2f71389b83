package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Errorf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	for _, s := range []string{"debug", "info", "warn", "error"} {
		if !ValidLevel(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if ValidLevel("verbose") {
		t.Error("expected 'verbose' to be invalid")
	}
}

func TestNewWithoutFile(t *testing.T) {
	logger, closer := New(Config{Level: "info", Format: "json"})
	if logger == nil {
		t.Fatal("expected logger")
	}
	if closer == nil {
		t.Fatal("expected a closer")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("closing without file output: %v", err)
	}
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "festline.log")
	logger, closer := New(Config{Level: "debug", Format: "text", File: path})
	if closer == nil {
		t.Fatal("expected closer with file output")
	}
	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("closing log writer: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected log file to exist: %v", err)
	}
}
