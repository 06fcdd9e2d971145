package usecase

import (
	"cmp"
	"context"
	"strings"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/bucketfs/sorter"
	"github.com/rise-and-shine/bucketfs/ucdef"
	"github.com/rise-and-shine/bucketfs/vfs"
	"github.com/rise-and-shine/bucketfs/vpath"
)

// Sortable listing fields.
const (
	SortName         = "name"
	SortSize         = "size"
	SortLastModified = "lastModified"
	SortFileCount    = "fileCount"
)

// ListDirectoryRequest selects the directory to list. An empty prefix lists the root.
// Sort is an optional "field:direction" list, e.g. "size:desc,name:asc". Without it entries
// keep the store's lexicographic key order.
type ListDirectoryRequest struct {
	Prefix string `query:"prefix" json:"prefix" validate:"vpath"`
	Sort   string `query:"sort"   json:"sort"`
}

//nolint:gochecknoglobals // static comparator tables
var (
	folderComparators = sorter.Comparators[vfs.Folder]{
		SortName:      func(a, b vfs.Folder) int { return strings.Compare(a.Name, b.Name) },
		SortFileCount: func(a, b vfs.Folder) int { return cmp.Compare(a.FileCount, b.FileCount) },
	}
	fileComparators = sorter.Comparators[vfs.File]{
		SortName:         func(a, b vfs.File) int { return strings.Compare(a.Name, b.Name) },
		SortSize:         func(a, b vfs.File) int { return cmp.Compare(a.Size, b.Size) },
		SortLastModified: func(a, b vfs.File) int { return a.LastModified.Compare(b.LastModified) },
	}
)

type listDirectory struct {
	fs Filesystem
}

// NewListDirectory lists the folders and files directly below a prefix.
func NewListDirectory(fs Filesystem) ucdef.UserAction[*ListDirectoryRequest, *vfs.Listing] {
	return &listDirectory{fs: fs}
}

func (uc *listDirectory) OperationID() string { return "list-directory" }

func (uc *listDirectory) Execute(ctx context.Context, in *ListDirectoryRequest) (*vfs.Listing, error) {
	listing, err := uc.fs.ListDirectory(ctx, vpath.NewPrefix(in.Prefix))
	if err != nil {
		return nil, errx.Wrap(err)
	}

	opts := sorter.MakeFromStr(in.Sort, SortName, SortSize, SortLastModified, SortFileCount)
	sorter.Sort(listing.Folders, opts, folderComparators)
	sorter.Sort(listing.Files, opts, fileComparators)

	return listing, nil
}
