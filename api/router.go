// Package api registers the HTTP routes of the file manager.
package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/rise-and-shine/bucketfs/http/server"
	"github.com/rise-and-shine/bucketfs/http/server/forward"
	"github.com/rise-and-shine/bucketfs/observability/metrics"
	"github.com/rise-and-shine/bucketfs/usecase"
	"github.com/rise-and-shine/bucketfs/vfs"
)

// UploadPath is the streaming upload route. It is exempt from the request timeout.
const UploadPath = "/api/upload"

// ErrorOptions returns the error rendering options for the routes registered here.
func ErrorOptions(hideDetails bool) server.ErrorOptions {
	return server.ErrorOptions{
		HideDetails: hideDetails,
		CodeStatus: map[string]int{
			vfs.CodePayloadTooLarge: fiber.StatusRequestEntityTooLarge,
		},
	}
}

// Router returns the register function for the file manager routes.
// The /metrics route is only registered when m is not nil.
func Router(fs *vfs.FS, m *metrics.Metrics) func(r fiber.Router) {
	return func(r fiber.Router) {
		g := r.Group("/api")

		g.Get("/health", forward.ToUserAction(usecase.NewHealth(fs)))
		g.Get("/files", forward.ToUserAction(usecase.NewListDirectory(fs)))
		g.Post("/create-folder", forward.ToUserAction(usecase.NewCreateFolder(fs)))
		g.Post("/rename", forward.ToUserAction(usecase.NewRename(fs)))
		g.Post("/move-multiple", forward.ToUserAction(usecase.NewMoveMultiple(fs)))
		g.Delete("/delete", forward.ToUserAction(usecase.NewDelete(fs)))
		g.Delete("/delete-multiple", forward.ToUserAction(usecase.NewDeleteMultiple(fs)))

		r.Post(UploadPath, newUploadHandler(fs).handle)

		if m != nil {
			r.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
		}
	}
}
