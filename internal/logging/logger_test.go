// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"INFO", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInitJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("channel", "meta").Msg("test message")

	out := buf.String()
	if !strings.Contains(out, `"message":"test message"`) {
		t.Errorf("expected JSON message field, got %q", out)
	}
	if !strings.Contains(out, `"channel":"meta"`) {
		t.Errorf("expected channel field, got %q", out)
	}
	if !strings.Contains(out, `"time":`) {
		t.Errorf("expected timestamp field, got %q", out)
	}
}

func TestInitLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Debug().Msg("suppressed")
	Info().Msg("suppressed")
	Warn().Msg("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("messages below warn should be filtered, got %q", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Errorf("warn message should be emitted, got %q", out)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()

	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("empty context should have no request ID, got %q", got)
	}

	ctx = ContextWithRequestID(ctx, "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("RequestIDFromContext = %q, want %q", got, "req-123")
	}
}

func TestGenerateRequestIDUnique(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()
	if a == b {
		t.Error("consecutive request IDs should differ")
	}
	if len(a) != 36 {
		t.Errorf("request ID should be a UUID, got %q", a)
	}
}

func TestCtxAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	ctx := ContextWithRequestID(context.Background(), "abc-def")
	Ctx(ctx).Info().Msg("with request id")

	if !strings.Contains(buf.String(), `"request_id":"abc-def"`) {
		t.Errorf("expected request_id field, got %q", buf.String())
	}
}

func TestLoggerFromContextFallback(t *testing.T) {
	var buf bytes.Buffer
	custom := NewTestLogger(&buf)

	ctx := ContextWithLogger(context.Background(), custom)
	logger := LoggerFromContext(ctx)
	logger.Info().Msg("custom sink")

	if !strings.Contains(buf.String(), "custom sink") {
		t.Errorf("stored logger should be used, got %q", buf.String())
	}
}

func TestSlogHandlerWritesToZerolog(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	slogger := NewSlogLogger()
	slogger.Info("supervisor event", slog.String("service", "http-server"), slog.Int("restarts", 2))

	out := buf.String()
	if !strings.Contains(out, `"message":"supervisor event"`) {
		t.Errorf("expected message through adapter, got %q", out)
	}
	if !strings.Contains(out, `"service":"http-server"`) {
		t.Errorf("expected string attr, got %q", out)
	}
	if !strings.Contains(out, `"restarts":2`) {
		t.Errorf("expected int attr, got %q", out)
	}
}

func TestSlogHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	slogger := NewSlogLogger().WithGroup("tree")
	slogger.Warn("backoff", slog.String("layer", "jobs"))

	if !strings.Contains(buf.String(), `"tree.layer":"jobs"`) {
		t.Errorf("expected group-prefixed key, got %q", buf.String())
	}
}

func TestSlogHandlerLevelMapping(t *testing.T) {
	tests := []struct {
		slogLevel slog.Level
		want      zerolog.Level
	}{
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		if got := slogToZerologLevel(tt.slogLevel); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.slogLevel, got, tt.want)
		}
	}
}
