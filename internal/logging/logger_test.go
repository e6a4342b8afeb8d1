package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHelpersNilSafe(t *testing.T) {
	// Must not panic with a nil logger.
	Info(nil, "msg")
	Debug(nil, "msg")
	Warn(nil, "msg")
	Error(nil, "msg", nil)
}

func TestNewLoggerReturnsLogger(t *testing.T) {
	logger := NewLogger(Config{Level: "debug", Format: "json", Service: "scoreboard", Version: "test"})
	if logger == nil {
		t.Fatalf("expected logger")
	}
	if !logger.Enabled(nil, slog.LevelDebug) {
		t.Fatalf("debug level should be enabled")
	}
}
