package httpapi

import (
	"context"
	"testing"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"httpapi.Handler.MakeDraftPick": true,
		"httpapi.Handler.StartLeague":   true,
		"httpapi.RequestLogging":        false,
		"httpapi.writeError":            false,
		"":                              false,
	}
	for name, want := range cases {
		if got := shouldCreateHTTPAPISpan(name); got != want {
			t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", name, got, want)
		}
	}
}

func TestStartSpan_NoParentIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.GetDraftBoard")
	defer span.End()
	if got != ctx {
		t.Fatalf("expected context to be returned unchanged without a parent span")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected a no-op span without a parent span")
	}
}

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	skipped := []string{"/healthz", "/health", "/livez", "/readyz", " /healthz "}
	for _, path := range skipped {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for probe path %q", path)
		}
	}
	traced := []string{"/v1/leagues/lg-1/draft/picks", "/v1/leagues", "/"}
	for _, path := range traced {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}
