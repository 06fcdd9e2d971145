package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/bucketfs/http/server"
	"github.com/rise-and-shine/bucketfs/http/server/middleware"
	"github.com/rise-and-shine/bucketfs/meta"
	"github.com/rise-and-shine/bucketfs/observability/logger"
)

func newServer(routes func(r fiber.Router), mws ...server.Middleware) *server.HTTPServer {
	srv := server.NewHTTPServer(server.Config{Host: "localhost", Port: 1, BodyLimit: 1 << 10}, mws)
	srv.RegisterRouter(routes)
	return srv
}

func TestTimeoutMW_SkipsListedPaths(t *testing.T) {
	deadlines := map[string]bool{}
	handler := func(c *fiber.Ctx) error {
		_, ok := c.UserContext().Deadline()
		deadlines[c.Path()] = ok
		return c.SendStatus(fiber.StatusOK)
	}

	srv := newServer(func(r fiber.Router) {
		r.Get("/short", handler)
		r.Get("/stream", handler)
	}, middleware.NewTimeoutMW(time.Minute, "/stream"))

	for _, path := range []string{"/short", "/stream"} {
		resp, err := srv.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.True(t, deadlines["/short"])
	assert.False(t, deadlines["/stream"])
}

func TestMetaInjectMW(t *testing.T) {
	var got map[meta.ContextKey]string

	srv := newServer(func(r fiber.Router) {
		r.Get("/", func(c *fiber.Ctx) error {
			got = meta.ExtractMetaFromContext(c.UserContext())
			return c.SendStatus(fiber.StatusOK)
		})
	}, middleware.NewTracingMW(), middleware.NewMetaInjectMW())

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderUserAgent, "bucketfs-test")

	resp, err := srv.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "bucketfs-test", got[meta.UserAgent])
	assert.NotEmpty(t, got[meta.TraceID])
	assert.Equal(t, got[meta.TraceID], resp.Header.Get("X-Trace-ID"))
}

func TestRecoveryAndErrorHandler(t *testing.T) {
	srv := newServer(func(r fiber.Router) {
		r.Get("/panic", func(*fiber.Ctx) error { panic("boom") })
		r.Get("/missing", func(*fiber.Ctx) error {
			return errx.New("no such thing", errx.WithType(errx.T_NotFound), errx.WithCode("NOT_FOUND"))
		})
	},
		middleware.NewRecoveryMW(logger.Nop()),
		middleware.NewLoggerMW(logger.Nop()),
		middleware.NewErrorHandlerMW(server.ErrorOptions{}),
	)

	tests := map[string]int{
		"/panic":   fiber.StatusInternalServerError,
		"/missing": fiber.StatusNotFound,
	}
	for path, status := range tests {
		resp, err := srv.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, status, resp.StatusCode, path)
	}
}

func TestCORSMW_Preflight(t *testing.T) {
	srv := newServer(func(r fiber.Router) {
		r.Delete("/api/delete", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	}, middleware.NewCORSMW("http://localhost:5173"))

	req := httptest.NewRequest(fiber.MethodOptions, "/api/delete", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:5173")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, fiber.MethodDelete)

	resp, err := srv.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}
