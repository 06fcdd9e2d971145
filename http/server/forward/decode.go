package forward

import (
	"strings"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
)

// decodeBody decodes a JSON request body into req. An empty body leaves req untouched.
// Bodies above the server body limit are rejected before being read, since the server
// streams large bodies instead of refusing them. The unread body stays on the wire,
// so the connection is closed after the response.
func decodeBody[I any](c *fiber.Ctx, req I) error {
	if c.Request().Header.ContentLength() > c.App().Config().BodyLimit {
		c.Context().SetConnectionClose()
		return fiber.ErrRequestEntityTooLarge
	}

	if len(c.Body()) == 0 {
		return nil
	}

	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return errx.New(
			"content type must be application/json for this request",
			errx.WithType(errx.T_Validation),
			errx.WithCode(codeInvalidContentType),
		)
	}

	if err := c.BodyParser(req); err != nil {
		return errx.Wrap(
			err,
			errx.WithType(errx.T_Validation),
			errx.WithCode(codeInvalidJSONBody),
		)
	}

	return nil
}

// decodeQuery decodes the query params into req.
func decodeQuery[I any](c *fiber.Ctx, req I) error {
	if len(c.Queries()) == 0 {
		return nil
	}

	if err := c.QueryParser(req); err != nil {
		return errx.Wrap(
			err,
			errx.WithType(errx.T_Validation),
			errx.WithCode(codeInvalidQueryParams),
		)
	}

	return nil
}
