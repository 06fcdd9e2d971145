package server

import (
	"errors"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/rise-and-shine/bucketfs/meta"
)

const (
	// codeRouterError is used when the router encounters an error.
	codeRouterError = "ROUTER_ERROR"
)

// ErrorOptions controls how errors are rendered into responses.
type ErrorOptions struct {
	// HideDetails omits the error trace and details from the response.
	HideDetails bool

	// CodeStatus overrides the status derived from the error type for specific error codes.
	CodeStatus map[string]int
}

// WriteErrorResponse writes a standardized error response to the Fiber context
// and returns the error converted to errx.ErrorX.
func WriteErrorResponse(c *fiber.Ctx, err error, opts ErrorOptions) error {
	e := mapAnyErrorToErrorX(err)
	traceID := meta.Find(c.UserContext(), meta.TraceID)

	status, ok := opts.CodeStatus[e.Code()]
	if !ok {
		status = statusCode(err, e.Type())
	}

	c.Status(status)
	_ = c.JSON(map[string]any{
		"success":  false,
		"trace_id": traceID,
		"error":    buildErrorSchema(e, status, opts.HideDetails),
	})

	return e
}

// buildErrorSchema constructs an error response object from an ErrorX instance.
func buildErrorSchema(e errx.ErrorX, status int, hideDetails bool) errorSchema {
	errResp := errorSchema{
		Code:    e.Code(),
		Message: utils.StatusMessage(status),
		Cause:   e.Error(),
		Fields:  e.Fields(),
	}
	if !hideDetails {
		errResp.Trace = e.Trace()
		errResp.Details = e.Details()
	}
	return errResp
}

// errorSchema defines the structure of error responses returned to clients.
type errorSchema struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Cause   string            `json:"cause"`
	Trace   string            `json:"trace,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details map[string]any    `json:"details,omitempty"`
}

// statusCode keeps the status of Fiber errors and derives it from the error type otherwise.
func statusCode(err error, t errx.Type) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return mapErrorTypeToHTTPStatusCode(t)
}

// mapErrorTypeToHTTPStatusCode converts an errx.Type to the appropriate HTTP status code.
func mapErrorTypeToHTTPStatusCode(t errx.Type) int {
	switch t {
	case errx.T_Authentication:
		return fiber.StatusUnauthorized
	case errx.T_Forbidden:
		return fiber.StatusForbidden
	case errx.T_NotFound:
		return fiber.StatusNotFound
	case errx.T_Validation:
		return fiber.StatusBadRequest
	case errx.T_Conflict:
		return fiber.StatusConflict
	case errx.T_Throttling:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// mapAnyErrorToErrorX converts any error to an errx.ErrorX type.
// Fiber errors (unknown routes, oversized bodies) are mapped to matching error types.
func mapAnyErrorToErrorX(err error) errx.ErrorX {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		var t errx.Type

		switch {
		case fiberErr.Code == fiber.StatusUnauthorized:
			t = errx.T_Authentication
		case fiberErr.Code == fiber.StatusForbidden:
			t = errx.T_Forbidden
		case fiberErr.Code == fiber.StatusNotFound:
			t = errx.T_NotFound
		case fiberErr.Code == fiber.StatusConflict:
			t = errx.T_Conflict
		case fiberErr.Code == fiber.StatusTooManyRequests:
			t = errx.T_Throttling
		case fiberErr.Code >= 400 && fiberErr.Code < 500:
			t = errx.T_Validation
		default:
			t = errx.T_Internal
		}

		err = errx.New(
			fiberErr.Message,
			errx.WithCode(codeRouterError),
			errx.WithType(t),
			errx.WithDetails(errx.D{
				"fiber_code": fiberErr.Code,
				"fiber_msg":  fiberErr.Message,
			}),
		)
	}

	return errx.AsErrorX(err)
}
