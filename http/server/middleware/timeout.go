package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/rise-and-shine/bucketfs/http/server"
)

// NewTimeoutMW creates a middleware that applies a timeout to the request context.
//
// Requests whose path is listed in skipPaths keep the parent context. Those are streaming
// routes whose duration depends on the payload size.
func NewTimeoutMW(duration time.Duration, skipPaths ...string) server.Middleware {
	return server.Middleware{
		Priority: 800,
		Handler: func(c *fiber.Ctx) error {
			if lo.Contains(skipPaths, c.Path()) {
				return c.Next()
			}

			ctx, cancel := context.WithTimeout(c.UserContext(), duration)
			defer cancel()

			c.SetUserContext(ctx)

			return c.Next()
		},
	}
}
