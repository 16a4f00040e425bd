package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("draft-league/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// probePaths are polled by the orchestrator and never traced.
var probePaths = map[string]bool{
	"/healthz": true,
	"/health":  true,
	"/livez":   true,
	"/readyz":  true,
}

// RequestTracing opens the server span for every non-probe request.
func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "draft-league-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	return !probePaths[strings.ToLower(strings.TrimSpace(path))]
}

// startSpan opens a child span for a handler. Anything else, or a request
// the server span skipped, gets a no-op span the caller may End freely.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return len(name) > len(handlerSpanPrefix) && strings.HasPrefix(name, handlerSpanPrefix)
}
