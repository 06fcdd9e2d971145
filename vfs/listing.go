package vfs

import (
	"context"
	"strings"
	"time"

	"github.com/code19m/errx"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/rise-and-shine/bucketfs/objstore"
	"github.com/rise-and-shine/bucketfs/vpath"
)

const (
	entryTypeFolder = "folder"
	entryTypeFile   = "file"
)

// Folder is an immediate sub-directory in a Listing.
type Folder struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	FullPath string `json:"fullPath"`

	// FileCount is the number of files at any depth below the folder. Folder markers are not counted.
	FileCount int `json:"fileCount"`
}

// File is an object directly inside the listed directory.
type File struct {
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	FullPath     string    `json:"fullPath"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	DownloadURL  string    `json:"downloadUrl"`
}

// Listing is the content of one virtual directory.
type Listing struct {
	Folders []Folder `json:"folders"`
	Files   []File   `json:"files"`
}

// ListDirectory returns the immediate children of prefix.
// Every folder carries the recursive count of files below it.
func (f *FS) ListDirectory(ctx context.Context, prefix vpath.Prefix) (_ *Listing, err error) {
	ctx, span := f.startSpan(ctx, "ListDirectory", attribute.String("prefix", prefix.String()))
	defer func() { endSpan(span, err) }()

	listing := &Listing{Folders: []Folder{}, Files: []File{}}

	in := objstore.ListInput{
		Prefix:    prefix.String(),
		Delimiter: vpath.Separator,
		MaxKeys:   f.cfg.ListPageSize,
	}
	err = objstore.Walk(ctx, f.store, in, func(page *objstore.ListPage) error {
		for _, cp := range page.CommonPrefixes {
			sub := vpath.Prefix(cp)
			listing.Folders = append(listing.Folders, Folder{
				Name:     prefix.ChildName(sub),
				Type:     entryTypeFolder,
				FullPath: sub.String(),
			})
		}

		for _, obj := range page.Objects {
			key := vpath.Key(obj.Key)
			if key == prefix.Marker() || key.IsFolderMarker() {
				continue
			}
			listing.Files = append(listing.Files, File{
				Name:         key.RelativeTo(prefix),
				Type:         entryTypeFile,
				FullPath:     key.String(),
				Size:         obj.Size,
				LastModified: obj.LastModified,
				DownloadURL:  f.downloadURL(key),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"operation": "list", "prefix": prefix.String()}))
	}

	err = f.countFolderFiles(ctx, listing.Folders)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	span.SetAttributes(
		attribute.Int("folders", len(listing.Folders)),
		attribute.Int("files", len(listing.Files)),
	)
	return listing, nil
}

// countFolderFiles fills FileCount of every folder, counting at most ListConcurrency folders at once.
func (f *FS) countFolderFiles(ctx context.Context, folders []Folder) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.ListConcurrency)

	for i := range folders {
		g.Go(func() error {
			n, err := f.CountFiles(gctx, vpath.Prefix(folders[i].FullPath))
			if err != nil {
				return err
			}
			folders[i].FileCount = n
			return nil
		})
	}

	return errx.Wrap(g.Wait())
}

// CountFiles returns the number of non-marker keys at any depth below prefix.
func (f *FS) CountFiles(ctx context.Context, prefix vpath.Prefix) (int, error) {
	count := 0
	in := objstore.ListInput{Prefix: prefix.String(), MaxKeys: f.cfg.ListPageSize}

	err := objstore.Walk(ctx, f.store, in, func(page *objstore.ListPage) error {
		for _, obj := range page.Objects {
			if !vpath.Key(obj.Key).IsFolderMarker() {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(errx.D{"operation": "count", "prefix": prefix.String()}))
	}

	return count, nil
}

func (f *FS) downloadURL(key vpath.Key) string {
	return strings.TrimRight(f.cfg.PublicBaseURL, "/") + "/" + key.String()
}
