package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/bucketfs/http/server"
	"github.com/rise-and-shine/bucketfs/meta"
	"github.com/rise-and-shine/bucketfs/observability/tracing"
)

// NewMetaInjectMW creates a middleware that injects request metadata into the request context.
//
// The trace id set by the tracing middleware is kept. Without one, a fallback id is generated.
func NewMetaInjectMW() server.Middleware {
	return server.Middleware{
		Priority: 700,
		Handler: func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			traceID := meta.Find(ctx, meta.TraceID)
			if traceID == "" {
				traceID = tracing.GetStartingTraceID(ctx)
				c.Set(headerTraceID, traceID)
			}

			ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
				meta.TraceID:        traceID,
				meta.IPAddress:      c.IP(),
				meta.UserAgent:      c.Get(fiber.HeaderUserAgent),
				meta.Referer:        c.Get(fiber.HeaderReferer),
				meta.ServiceNameKey:    meta.ServiceName(),
				meta.ServiceVersionKey: meta.ServiceVersion(),
			})
			c.SetUserContext(ctx)

			return c.Next()
		},
	}
}
