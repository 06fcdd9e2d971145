package usecase

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/bucketfs/ucdef"
	"github.com/rise-and-shine/bucketfs/vpath"
)

// MoveMultipleRequest moves items into TargetPath. An empty target is the root.
type MoveMultipleRequest struct {
	Items      []vpath.Item `json:"items"      validate:"required,min=1,dive"`
	TargetPath string       `json:"targetPath" validate:"vpath"`
}

// MoveMultipleResponse reports how many items were processed.
type MoveMultipleResponse struct {
	Success bool `json:"success"`
	Moved   int  `json:"moved"`
}

type moveMultiple struct {
	fs Filesystem
}

// NewMoveMultiple moves items one at a time, stopping at the first failure.
func NewMoveMultiple(fs Filesystem) ucdef.UserAction[*MoveMultipleRequest, *MoveMultipleResponse] {
	return &moveMultiple{fs: fs}
}

func (uc *moveMultiple) OperationID() string { return "move-multiple" }

func (uc *moveMultiple) Execute(ctx context.Context, in *MoveMultipleRequest) (*MoveMultipleResponse, error) {
	moved, err := uc.fs.Move(ctx, in.Items, vpath.NewPrefix(in.TargetPath))
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return &MoveMultipleResponse{Success: true, Moved: moved}, nil
}
