package tracing

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// GetStartingTraceID returns the trace id of the span in ctx.
// Without a recording span it returns a random id prefixed with "man-", so logs stay correlated.
func GetStartingTraceID(ctx context.Context) string {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if traceID.IsValid() {
		return traceID.String()
	}
	return "man-" + uuid.NewString()
}
