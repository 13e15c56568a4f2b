package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, buf.String())
	}
	return entry
}

func TestFieldHelpers(t *testing.T) {
	t.Parallel()
	cause := errors.New("sample exceeds population")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("path", "/api/estimate"), "path", "/api/estimate"},
		{"Int", Int("status", 200), "status", 200},
		{"Int64", Int64("population", 1000), "population", int64(1000)},
		{"Uint64", Uint64("requests", 12345678901234567890), "requests", uint64(12345678901234567890)},
		{"Float64", Float64("standard_error", 0.0475), "standard_error", 0.0475},
		{"Duration", Duration("duration", time.Millisecond), "duration", time.Millisecond},
		{"Err", Err(cause), "error", cause},
		{"Err nil", Err(nil), "error", nil},
	}
	for _, tt := range tests {
		tt := tt // per-iteration copy (go 1.21 loop semantics)
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.field.Key != tt.key || tt.field.Value != tt.value {
				t.Errorf("%s = {%q, %v}, want {%q, %v}", tt.name, tt.field.Key, tt.field.Value, tt.key, tt.value)
			}
		})
	}
}

func TestNewLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "server").Info("server listening", String("addr", "127.0.0.1:8080"))

	entry := decodeLine(t, &buf)
	for key, want := range map[string]any{
		"component": "server",
		"level":     "info",
		"message":   "server listening",
		"addr":      "127.0.0.1:8080",
	} {
		if entry[key] != want {
			t.Errorf("%s = %v, want %v", key, entry[key], want)
		}
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry has no timestamp")
	}
	if NewDefaultLogger() == nil {
		t.Error("NewDefaultLogger returned nil")
	}
}

func TestZerologAdapterFieldTypes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf))
	logger.Debug("estimate computed",
		Int64("population", 1000),
		Int("sample", 100),
		Uint64("requests", 7),
		Float64("proportion", 0.5),
		Field{Key: "clamped", Value: true},
		Duration("duration", 2*time.Millisecond),
		Field{Key: "cause", Value: errors.New("boom")},
		Field{Key: "levels", Value: []float64{0.95, 0.75}},
	)

	entry := decodeLine(t, &buf)
	if entry["level"] != "debug" {
		t.Errorf("level = %v, want debug", entry["level"])
	}
	checks := map[string]any{
		"population": float64(1000),
		"sample":     float64(100),
		"requests":   float64(7),
		"proportion": 0.5,
		"clamped":    true,
		"duration":   float64(2),
		"cause":      "boom",
	}
	for key, want := range checks {
		if entry[key] != want {
			t.Errorf("%s = %v (%T), want %v", key, entry[key], entry[key], want)
		}
	}
	if levels, ok := entry["levels"].([]any); !ok || len(levels) != 2 {
		t.Errorf("levels = %v", entry["levels"])
	}
}

func TestZerologAdapterError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf))
	logger.Error("estimate rejected", errors.New("sample size must be greater than 1"), Int64("sample", 1))

	entry := decodeLine(t, &buf)
	if entry["level"] != "error" || entry["error"] != "sample size must be greater than 1" {
		t.Errorf("entry = %v", entry)
	}
	if entry["sample"] != float64(1) {
		t.Errorf("sample = %v", entry["sample"])
	}
}

func TestZerologAdapterPrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf))

	logger.Printf("listening on %s", ":8080")
	if entry := decodeLine(t, &buf); entry["message"] != "listening on :8080" {
		t.Errorf("Printf message = %v", entry["message"])
	}
	buf.Reset()
	logger.Println("shutdown", "complete")
	if entry := decodeLine(t, &buf); entry["message"] != "shutdown complete" {
		t.Errorf("Println message = %v", entry["message"])
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name string
		log  func(Logger)
		want string
	}{
		{"Info", func(l Logger) { l.Info("server stopped") }, "[INFO] server stopped\n"},
		{"Info fields", func(l Logger) { l.Info("request", String("path", "/"), Int("status", 200)) }, "[INFO] request path=/ status=200\n"},
		{"Error", func(l Logger) { l.Error("render index", errors.New("boom")) }, "[ERROR] render index: boom\n"},
		{"Debug", func(l Logger) { l.Debug("method not allowed", String("method", "POST")) }, "[DEBUG] method not allowed method=POST\n"},
		{"Printf", func(l Logger) { l.Printf("%d requests", 3) }, "3 requests\n"},
		{"Println", func(l Logger) { l.Println("a", "b") }, "a b\n"},
	}
	for _, tt := range tests {
		tt := tt // per-iteration copy (go 1.21 loop semantics)
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerInterfaceSatisfied(t *testing.T) {
	t.Parallel()
	var _ Logger = (*ZerologAdapter)(nil)
	var _ Logger = (*StdLoggerAdapter)(nil)
	if !strings.HasPrefix(formatFields([]Field{Int("n", 1)}), " ") {
		t.Error("formatted fields should start with a space")
	}
}
