// Package usecase exposes the virtual filesystem operations as ucdef.UserAction implementations.
package usecase

import (
	"context"

	"github.com/rise-and-shine/bucketfs/vfs"
	"github.com/rise-and-shine/bucketfs/vpath"
)

// Filesystem is the subset of *vfs.FS the use cases depend on.
type Filesystem interface {
	ListDirectory(ctx context.Context, prefix vpath.Prefix) (*vfs.Listing, error)
	CreateFolder(ctx context.Context, path string) (vpath.Prefix, error)
	Rename(ctx context.Context, oldPath, newPath string, isFolder bool) error
	Move(ctx context.Context, items []vpath.Item, target vpath.Prefix) (int, error)
	Delete(ctx context.Context, item vpath.Item) error
	DeleteMultiple(ctx context.Context, items []vpath.Item) error
	Ping(ctx context.Context) error
}

// SuccessResponse is returned by mutations that have nothing else to report.
type SuccessResponse struct {
	Success bool `json:"success"`
}
