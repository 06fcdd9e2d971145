package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/bucketfs/http/server"
)

// NewErrorHandlerMW creates a middleware that converts errors to standardized JSON responses.
//
// Errors already written (status >= 400) are passed through untouched.
func NewErrorHandlerMW(opts server.ErrorOptions) server.Middleware {
	return server.Middleware{
		Priority: 400,
		Handler: func(c *fiber.Ctx) error {
			err := c.Next()
			if err == nil {
				return nil
			}

			if c.Response() != nil && c.Response().StatusCode() >= fiber.StatusBadRequest {
				return err
			}

			return server.WriteErrorResponse(c, err, opts)
		},
	}
}
