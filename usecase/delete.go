package usecase

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/bucketfs/ucdef"
	"github.com/rise-and-shine/bucketfs/vpath"
)

// DeleteRequest removes one file or folder.
type DeleteRequest struct {
	vpath.Item
}

// DeleteMultipleRequest removes every listed item.
type DeleteMultipleRequest struct {
	Items []vpath.Item `json:"items" validate:"required,min=1,dive"`
}

type deleteItem struct {
	fs Filesystem
}

// NewDelete removes a file, or a folder with everything below it.
func NewDelete(fs Filesystem) ucdef.UserAction[*DeleteRequest, *SuccessResponse] {
	return &deleteItem{fs: fs}
}

func (uc *deleteItem) OperationID() string { return "delete" }

func (uc *deleteItem) Execute(ctx context.Context, in *DeleteRequest) (*SuccessResponse, error) {
	err := uc.fs.Delete(ctx, in.Item)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return &SuccessResponse{Success: true}, nil
}

type deleteMultiple struct {
	fs Filesystem
}

// NewDeleteMultiple removes several items, attempting all of them even when some fail.
func NewDeleteMultiple(fs Filesystem) ucdef.UserAction[*DeleteMultipleRequest, *SuccessResponse] {
	return &deleteMultiple{fs: fs}
}

func (uc *deleteMultiple) OperationID() string { return "delete-multiple" }

func (uc *deleteMultiple) Execute(ctx context.Context, in *DeleteMultipleRequest) (*SuccessResponse, error) {
	err := uc.fs.DeleteMultiple(ctx, in.Items)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return &SuccessResponse{Success: true}, nil
}
