package usecase

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/bucketfs/ucdef"
)

// CreateFolderRequest names the folder to create. Every segment is sanitized.
type CreateFolderRequest struct {
	Path string `json:"path" validate:"required,vpath"`
}

// CreateFolderResponse reports the sanitized folder path, ending with a separator.
type CreateFolderResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
}

type createFolder struct {
	fs Filesystem
}

// NewCreateFolder writes a folder marker so that an empty folder shows up in listings.
func NewCreateFolder(fs Filesystem) ucdef.UserAction[*CreateFolderRequest, *CreateFolderResponse] {
	return &createFolder{fs: fs}
}

func (uc *createFolder) OperationID() string { return "create-folder" }

func (uc *createFolder) Execute(ctx context.Context, in *CreateFolderRequest) (*CreateFolderResponse, error) {
	prefix, err := uc.fs.CreateFolder(ctx, in.Path)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return &CreateFolderResponse{Success: true, Path: prefix.String()}, nil
}
