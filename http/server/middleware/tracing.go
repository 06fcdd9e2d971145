package middleware

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/bucketfs/http/server"
	"github.com/rise-and-shine/bucketfs/meta"
	"github.com/rise-and-shine/bucketfs/observability/tracing"
)

const headerTraceID = "X-Trace-ID"

// NewTracingMW creates a middleware that provides OpenTelemetry tracing for HTTP requests.
//
// The span is named after the matched route once the handler has run. The trace id is stored
// in the request context and echoed in the X-Trace-ID response header.
func NewTracingMW() server.Middleware {
	return server.Middleware{
		Priority: 900,
		Handler: func(c *fiber.Ctx) error {
			ctx, span := otel.Tracer("http-server").Start(
				c.UserContext(),
				c.Method()+" /",
				trace.WithSpanKind(trace.SpanKindServer),
			)
			defer span.End()

			setTraceID(ctx, c)

			err := c.Next()

			routePattern := c.Route().Path
			if routePattern != "" && routePattern != "/" {
				span.SetName(fmt.Sprintf("%s %s", c.Method(), routePattern))
			}

			span.SetAttributes(
				attribute.String("http.request.method", c.Method()),
				attribute.String("http.route", routePattern),
				attribute.String("url.full", c.OriginalURL()),
				attribute.Int("http.response.status_code", c.Response().StatusCode()),
			)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}

			return err
		},
	}
}

func setTraceID(ctx context.Context, c *fiber.Ctx) {
	traceID := tracing.GetStartingTraceID(ctx)
	ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{meta.TraceID: traceID})

	c.Set(headerTraceID, traceID)
	c.SetUserContext(ctx)
}
