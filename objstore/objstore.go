// Package objstore provides an abstraction over S3 compatible object stores.
//
// It defines the ObjectStore interface consumed by the virtual filesystem layer.
// Keys are opaque to implementations: folder semantics live entirely above this package.
package objstore

import (
	"context"
	"io"
	"time"
)

// DefaultDeleteBatchLimit is the S3 limit of keys per DeleteObjects request.
const DefaultDeleteBatchLimit = 1000

// ObjectStore defines the primitives the virtual filesystem is built from.
// Implementations must be safe for concurrent use.
type ObjectStore interface {
	// List returns one page of keys under in.Prefix.
	// With a delimiter, keys sharing the next path component are grouped into CommonPrefixes.
	List(ctx context.Context, in ListInput) (*ListPage, error)

	// PutEmpty writes a zero-length object at key.
	PutEmpty(ctx context.Context, key string) error

	// Copy performs a server-side copy of src to dst.
	Copy(ctx context.Context, src, dst string) error

	// Delete removes the object at key. Deleting a missing key succeeds.
	Delete(ctx context.Context, key string) error

	// DeleteBatch removes up to DeleteBatchLimit keys in one request.
	DeleteBatch(ctx context.Context, keys []string) error

	// DeleteBatchLimit returns the maximum number of keys DeleteBatch accepts.
	DeleteBatchLimit() int

	// Upload streams body into the object at key using multipart upload.
	// The body is never buffered as a whole.
	Upload(ctx context.Context, key string, body io.Reader, opts UploadOptions) (*ObjectInfo, error)
}

// ListInput describes one list request.
type ListInput struct {
	Prefix            string
	Delimiter         string
	ContinuationToken string

	// MaxKeys caps the page size. Zero leaves it to the store.
	MaxKeys int
}

// ListPage is one page of a list response.
type ListPage struct {
	CommonPrefixes []string
	Objects        []ObjectInfo

	// NextContinuationToken is empty on the last page.
	NextContinuationToken string
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// UploadOptions configures a streaming upload.
type UploadOptions struct {
	ContentType string

	// PartSize is the multipart chunk size in bytes.
	PartSize uint64

	// Concurrency is the number of parts buffered and sent in parallel.
	Concurrency uint

	// Progress receives the number of bytes consumed from body since the previous call.
	Progress func(n int64)
}
