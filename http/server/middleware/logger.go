package middleware

import (
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"

	"github.com/rise-and-shine/bucketfs/http/server"
	"github.com/rise-and-shine/bucketfs/observability/logger"
)

// LocalBytesReceived is the fiber.Ctx locals key under which streaming handlers
// record the number of body bytes they consumed.
const LocalBytesReceived = "bytes_received"

// NewLoggerMW creates a middleware that logs HTTP requests and responses.
//
// The level is derived from the response status: info for 2xx/3xx, warn for 4xx, error for 5xx.
func NewLoggerMW(log logger.Logger) server.Middleware {
	log = log.Named("middleware.logger")

	return server.Middleware{
		Priority: 500,
		Handler: func(c *fiber.Ctx) error {
			start := time.Now()

			err := handleWithRecovery(c)

			statusCode := c.Response().StatusCode()
			if err != nil {
				statusCode = errorStatus(err, statusCode)
			}

			requestSize := int64(c.Request().Header.ContentLength())
			if received := cast.ToInt64(c.Locals(LocalBytesReceived)); received > 0 {
				requestSize = received
			}

			l := log.WithContext(c.UserContext()).
				With("http_status_code", statusCode).
				With("http_method", c.Method()).
				With("http_path", c.Path()).
				With("http_route", c.Route().Path).
				With("duration", time.Since(start)).
				With("query_params", c.Queries()).
				With("request_size", requestSize)

			if err != nil {
				e := errx.AsErrorX(err)
				l = l.With("error", map[string]any{
					"code":    e.Code(),
					"message": e.Error(),
					"type":    e.Type().String(),
					"trace":   e.Trace(),
					"fields":  e.Fields(),
					"details": e.Details(),
				})
			}

			switch {
			case statusCode >= fiber.StatusInternalServerError:
				l.Error("request failed")
			case statusCode >= fiber.StatusBadRequest:
				l.Warn("request rejected")
			default:
				l.Info("request processed successfully")
			}

			return err
		},
	}
}

// errorStatus returns the status the error handler will write for err.
// The error handler runs later in the chain, so the response may still carry 200.
func errorStatus(err error, current int) int {
	if current >= fiber.StatusBadRequest {
		return current
	}
	if errx.AsErrorX(err).Type() == errx.T_Internal {
		return fiber.StatusInternalServerError
	}
	return fiber.StatusBadRequest
}

// handleWithRecovery executes the next middleware and converts a panic into an error,
// so the request is still logged.
func handleWithRecovery(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()

	return c.Next()
}
