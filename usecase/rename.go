package usecase

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/bucketfs/ucdef"
)

// RenameRequest moves one item. The last segment of NewPath is sanitized.
type RenameRequest struct {
	OldPath  string `json:"oldPath"  validate:"required,vpath"`
	NewPath  string `json:"newPath"  validate:"required,vpath"`
	IsFolder bool   `json:"isFolder"`
}

type rename struct {
	fs Filesystem
}

// NewRename renames a file or a folder with everything below it.
func NewRename(fs Filesystem) ucdef.UserAction[*RenameRequest, *SuccessResponse] {
	return &rename{fs: fs}
}

func (uc *rename) OperationID() string { return "rename" }

func (uc *rename) Execute(ctx context.Context, in *RenameRequest) (*SuccessResponse, error) {
	err := uc.fs.Rename(ctx, in.OldPath, in.NewPath, in.IsFolder)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return &SuccessResponse{Success: true}, nil
}
