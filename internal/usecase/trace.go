package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("keeper-stats/internal/usecase")

// startUsecaseSpan opens a child span under the request span. Without a
// valid parent (background jobs started outside a request, tests) it
// returns the context untouched so no orphan root spans are emitted.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if name == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return tracer.Start(ctx, name)
}
