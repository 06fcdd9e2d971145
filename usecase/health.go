package usecase

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/bucketfs/meta"
	"github.com/rise-and-shine/bucketfs/ucdef"
)

// HealthRequest carries no input.
type HealthRequest struct{}

// HealthResponse reports that the bucket is reachable.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Service string `json:"service,omitempty"`
	Version string `json:"version,omitempty"`
}

type health struct {
	fs Filesystem
}

// NewHealth checks connectivity to the bucket with a one-key listing.
func NewHealth(fs Filesystem) ucdef.UserAction[*HealthRequest, *HealthResponse] {
	return &health{fs: fs}
}

func (uc *health) OperationID() string { return "health" }

func (uc *health) Execute(ctx context.Context, _ *HealthRequest) (*HealthResponse, error) {
	err := uc.fs.Ping(ctx)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return &HealthResponse{
		Status:  "ok",
		Message: "connected to the object store",
		Service: meta.ServiceName(),
		Version: meta.ServiceVersion(),
	}, nil
}
