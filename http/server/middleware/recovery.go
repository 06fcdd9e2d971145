package middleware

import (
	"runtime"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/bucketfs/http/server"
	"github.com/rise-and-shine/bucketfs/observability/logger"
)

const stackTraceSize = 4 << 10

// NewRecoveryMW creates a middleware that recovers from panics in the request
// handling chain and converts them to structured errors.
func NewRecoveryMW(log logger.Logger) server.Middleware {
	log = log.Named("middleware.recovery")

	return server.Middleware{
		Priority: 1000,
		Handler: func(c *fiber.Ctx) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = panicError(r)
					log.WithContext(c.UserContext()).Errorx(err)
				}
			}()

			return c.Next()
		},
	}
}

func panicError(r any) error {
	stackTrace := make([]byte, stackTraceSize)
	stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

	return errx.New("panic recovered", errx.WithDetails(errx.D{
		"stack_trace":   string(stackTrace),
		"panic_message": r,
	}))
}
