package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("keeper-stats/internal/interfaces/httpapi")

// startSpan opens a handler span under the otelhttp server span. Requests
// on filtered routes like /healthz carry no parent, and helper names
// outside the handler namespace are skipped; both cases return the context
// untouched instead of minting root spans.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parentValid := trace.SpanFromContext(ctx).SpanContext().IsValid()
	if !parentValid || !strings.HasPrefix(name, "httpapi.Handler.") {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return apiTracer.Start(ctx, name)
}
