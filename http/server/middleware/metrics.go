package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/bucketfs/http/server"
	"github.com/rise-and-shine/bucketfs/observability/metrics"
)

// NewMetricsMW creates a middleware that counts and times requests per matched route.
// It runs outside the error handler, so the recorded status is the one sent to the client.
func NewMetricsMW(m *metrics.Metrics) server.Middleware {
	return server.Middleware{
		Priority: 850,
		Handler: func(c *fiber.Ctx) error {
			start := time.Now()

			err := c.Next()

			route := c.Route().Path
			status := c.Response().StatusCode()
			if err != nil && status < fiber.StatusBadRequest {
				status = errorStatus(err, status)
			}

			m.RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
			m.RequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()

			return err
		},
	}
}
