package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/rise-and-shine/bucketfs/http/server"
)

// NewCORSMW allows browser clients from allowOrigins (comma separated, "*" for any) to call the API.
func NewCORSMW(allowOrigins string) server.Middleware {
	return server.Middleware{
		Priority: 950,
		Handler: cors.New(cors.Config{
			AllowOrigins: allowOrigins,
			AllowMethods: strings.Join([]string{
				fiber.MethodGet,
				fiber.MethodPost,
				fiber.MethodDelete,
				fiber.MethodOptions,
			}, ","),
			AllowHeaders:  "Origin, Content-Type, Accept",
			ExposeHeaders: headerTraceID,
		}),
	}
}
