// Package forward adapts use cases to Fiber handlers.
package forward

import (
	"fmt"
	"reflect"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/bucketfs/mask"
	"github.com/rise-and-shine/bucketfs/meta"
	"github.com/rise-and-shine/bucketfs/observability/logger"
	"github.com/rise-and-shine/bucketfs/ucdef"
	"github.com/rise-and-shine/bucketfs/val"
)

const maxLogAllowedSize = 8 << 10 // 8KB

// ToUserAction forwards a request to a use case and writes its output as JSON.
//
// GET requests are decoded from the query string, POST and DELETE requests from a JSON body.
// The decoded input is validated by its validate tags before the use case runs.
// I must be a pointer to a struct.
func ToUserAction[I, O any](uc ucdef.UserAction[I, O]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := newRequest[I]()
		if err != nil {
			return errx.Wrap(err)
		}

		switch c.Method() {
		case fiber.MethodGet:
			err = decodeQuery(c, req)
		case fiber.MethodPost, fiber.MethodDelete:
			err = decodeBody(c, req)
		default:
			err = errx.New(
				"unsupported http method: allowed only GET, POST and DELETE",
				errx.WithType(errx.T_Validation),
				errx.WithCode(codeInvalidHTTPMethod),
				errx.WithDetails(errx.D{
					"received_http_method": c.Method(),
				}),
			)
		}
		if err != nil {
			return err //nolint:wrapcheck // decode errors keep their fiber status
		}

		ctx := meta.InjectMetaToContext(c.UserContext(), map[meta.ContextKey]string{
			meta.Operation: uc.OperationID(),
		})
		c.SetUserContext(ctx)

		log := logger.
			Named("http.handler").
			WithContext(ctx).
			With("use_case_type", ucdef.TypeUserAction)

		if len(c.Body()) <= maxLogAllowedSize {
			log = log.With("request_body", mask.StructToOrdMap(req))
		} else {
			log = log.With("request_body", fmt.Sprintf("too large for logging: %d bytes", len(c.Body())))
		}

		err = val.ValidateSchema(req)
		if err != nil {
			log.Warnx(err)
			return errx.Wrap(err)
		}

		resp, err := uc.Execute(ctx, req)
		if err != nil {
			log.Errorx(err)
			return errx.Wrap(err)
		}

		size, err := WriteJSON(c, resp)
		if err != nil {
			log.Errorx(err)
			return errx.Wrap(err)
		}

		if size <= maxLogAllowedSize {
			log = log.With("response_body", mask.StructToOrdMap(resp))
		} else {
			log = log.With("response_body", fmt.Sprintf("too large for logging: %d bytes", size))
		}

		log.Debug("use case executed")
		return nil
	}
}

// newRequest allocates a new *struct for the pointer type I.
func newRequest[I any]() (I, error) {
	var req I

	reqType := reflect.TypeOf((*I)(nil)).Elem()
	if reqType.Kind() != reflect.Pointer || reqType.Elem().Kind() != reflect.Struct {
		return req, errx.New("input type I must be a pointer to a struct")
	}

	reqVal := reflect.New(reqType.Elem()).Interface().(I) //nolint:errcheck // safe type assertion
	return reqVal, nil
}

// WriteJSON encodes data with the app's JSON encoder as the response body and returns its size.
func WriteJSON(c *fiber.Ctx, data any) (int, error) {
	raw, err := c.App().Config().JSONEncoder(data)
	if err != nil {
		return 0, errx.Wrap(err)
	}

	c.Response().SetBodyRaw(raw)
	c.Response().Header.SetContentType(fiber.MIMEApplicationJSON)
	return len(raw), nil
}
