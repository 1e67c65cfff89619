package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewReturnsNonNilLogger(t *testing.T) {
	logger := New(Config{Level: slog.LevelDebug, JSON: true, Service: "impact-analyser"})
	if logger == nil {
		t.Fatal("New() = nil")
	}
	logger.Info("test message")
}

func TestDefault(t *testing.T) {
	if logger := Default(); logger == nil {
		t.Fatal("Default() = nil")
	}
}
