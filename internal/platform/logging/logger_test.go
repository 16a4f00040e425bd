package logging

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerInfoContextAddsTraceFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "draft pick made", "league_id", "lg-1", "overall", 3)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["league_id"] != "lg-1" {
		t.Fatalf("unexpected league_id field: %v", fields["league_id"])
	}
	if fields["trace_id"] != traceID.String() {
		t.Fatalf("unexpected trace_id field: %v", fields["trace_id"])
	}
	if fields["span_id"] != spanID.String() {
		t.Fatalf("unexpected span_id field: %v", fields["span_id"])
	}
}

func TestLoggerErrorValuesUseNamedErrorField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Warn("join league failed", "error", errors.New("league is full"))

	fields := logs.All()[0].ContextMap()
	if fields["error"] != "league is full" {
		t.Fatalf("unexpected error field: %v", fields["error"])
	}
}

func TestLoggerOddArgsKeepsDanglingKey(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Info("odd", "team_id")

	fields := logs.All()[0].ContextMap()
	if _, ok := fields["team_id"]; !ok {
		t.Fatalf("expected dangling key to be kept, got %v", fields)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"WARNING": LevelWarn,
		" error ": LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q)=%v want %v", raw, got, want)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("nothing should panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil logger from nil receiver")
	}
}

func TestSetMirrorReceivesRecordsAboveLevel(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("skipped")
	logger.InfoContext(context.Background(), "league started", "league_id", "lg-1")
	SetMirror(nil)
	logger.Warn("not mirrored")

	if len(got) != 1 || got[0] != "info:league started" {
		t.Fatalf("unexpected mirrored records: %v", got)
	}
}

func TestSetLevelAppliesToChildren(t *testing.T) {
	logger := New("prod", LevelWarn)
	child := logger.Named("draft").With("league_id", "lg-1")

	if child.zap.Core().Enabled(LevelInfo) {
		t.Fatalf("expected info to be disabled at warn level")
	}
	logger.SetLevel(LevelInfo)
	if !child.zap.Core().Enabled(LevelInfo) {
		t.Fatalf("expected child logger to follow the parent level change")
	}
}

func TestSyncRunsOnce(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))
	child := logger.With("k", "v")

	if err := child.Sync(); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if !logger.synced.Load() {
		t.Fatalf("expected parent and child to share the sync flag")
	}
}
