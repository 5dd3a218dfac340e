package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	t.Setenv("GO_ENV", "")

	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Info("hidden")
	l.Warn("shown", "level", 42)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "level=42") {
		t.Errorf("expected warn record with attribute, got %q", out)
	}
}

func TestNew_JSONInProduction(t *testing.T) {
	t.Setenv("GO_ENV", "production")

	var buf bytes.Buffer
	New(&buf, "info").Info("toggle", "muted", true)

	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected JSON output in production, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"muted":true`) {
		t.Errorf("expected muted attribute, got %q", buf.String())
	}
}

func TestClose_NoFile(t *testing.T) {
	if file != nil {
		t.Skip("log file configured by another test")
	}
	if err := Close(); err != nil {
		t.Errorf("Close() without file should return nil, got %v", err)
	}
}
