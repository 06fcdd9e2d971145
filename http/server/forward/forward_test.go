package forward_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/bucketfs/http/server"
	"github.com/rise-and-shine/bucketfs/http/server/forward"
	"github.com/rise-and-shine/bucketfs/http/server/middleware"
	"github.com/rise-and-shine/bucketfs/meta"
)

type echoRequest struct {
	Path  string `query:"path" json:"path" validate:"required,vpath"`
	Token string `json:"token" mask:"true"`
}

type echoResponse struct {
	Path      string `json:"path"`
	Operation string `json:"operation"`
}

type echo struct{}

func (echo) OperationID() string { return "echo" }

func (echo) Execute(ctx context.Context, in *echoRequest) (*echoResponse, error) {
	return &echoResponse{Path: in.Path, Operation: meta.Find(ctx, meta.Operation)}, nil
}

func newServer() *server.HTTPServer {
	srv := server.NewHTTPServer(server.Config{Host: "localhost", Port: 1, BodyLimit: 64}, []server.Middleware{
		middleware.NewErrorHandlerMW(server.ErrorOptions{}),
	})
	srv.RegisterRouter(func(r fiber.Router) {
		h := forward.ToUserAction[*echoRequest, *echoResponse](echo{})
		r.Get("/echo", h)
		r.Post("/echo", h)
		r.Delete("/echo", h)
		r.Put("/echo", h)
	})
	return srv
}

func call(t *testing.T, srv *server.HTTPServer, method, target, contentType, body string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}

	resp, err := srv.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestToUserAction(t *testing.T) {
	srv := newServer()

	tests := []struct {
		name        string
		method      string
		target      string
		contentType string
		body        string
		status      int
		contains    string
	}{
		{
			name:     "query for GET",
			method:   fiber.MethodGet,
			target:   "/echo?path=docs/a.txt",
			status:   fiber.StatusOK,
			contains: `{"path":"docs/a.txt","operation":"echo"}`,
		},
		{
			name:        "json body for POST",
			method:      fiber.MethodPost,
			target:      "/echo",
			contentType: fiber.MIMEApplicationJSON,
			body:        `{"path":"a/b"}`,
			status:      fiber.StatusOK,
			contains:    `"path":"a/b"`,
		},
		{
			name:        "json body for DELETE with charset",
			method:      fiber.MethodDelete,
			target:      "/echo",
			contentType: fiber.MIMEApplicationJSONCharsetUTF8,
			body:        `{"path":"a/"}`,
			status:      fiber.StatusOK,
			contains:    `"path":"a/"`,
		},
		{
			name:     "validation failure",
			method:   fiber.MethodGet,
			target:   "/echo?path=/abs",
			status:   fiber.StatusBadRequest,
			contains: "VALIDATION_FAILED",
		},
		{
			name:        "wrong content type",
			method:      fiber.MethodPost,
			target:      "/echo",
			contentType: fiber.MIMETextPlain,
			body:        `path=a`,
			status:      fiber.StatusBadRequest,
			contains:    "INVALID_CONTENT_TYPE",
		},
		{
			name:        "malformed json",
			method:      fiber.MethodPost,
			target:      "/echo",
			contentType: fiber.MIMEApplicationJSON,
			body:        `{"path":`,
			status:      fiber.StatusBadRequest,
			contains:    "INVALID_JSON_BODY",
		},
		{
			name:        "body above limit",
			method:      fiber.MethodPost,
			target:      "/echo",
			contentType: fiber.MIMEApplicationJSON,
			body:        `{"path":"` + strings.Repeat("a", 100) + `"}`,
			status:      fiber.StatusRequestEntityTooLarge,
		},
		{
			name:     "unsupported method",
			method:   fiber.MethodPut,
			target:   "/echo",
			status:   fiber.StatusBadRequest,
			contains: "INVALID_HTTP_METHOD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, srv, tt.method, tt.target, tt.contentType, tt.body)
			assert.Equal(t, tt.status, status, body)
			assert.Contains(t, body, tt.contains)
		})
	}
}

func TestToUserAction_OversizedBodyClosesConnection(t *testing.T) {
	srv := newServer()

	req := httptest.NewRequest(fiber.MethodPost, "/echo", strings.NewReader(`{"path":"`+strings.Repeat("a", 100)+`"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := srv.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.True(t, resp.Close)
}
