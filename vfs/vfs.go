// Package vfs emulates a folder/file tree on top of a flat object store.
//
// Folders exist either implicitly, as the common prefix of the keys below them, or
// explicitly through a zero-byte folder marker. Renames and moves are copy-then-delete
// sequences and are not atomic: a failure part way leaves the keys processed so far at
// their new location. Re-running the same operation finishes the job because moved keys
// are no longer listed under the source.
//
// FS holds no state between calls. Concurrent operations on overlapping prefixes are not
// isolated from each other and must be serialized by the caller.
package vfs

import (
	"context"

	"github.com/code19m/errx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/bucketfs/objstore"
	"github.com/rise-and-shine/bucketfs/observability/logger"
	"github.com/rise-and-shine/bucketfs/vpath"
)

const (
	tracerName = "github.com/rise-and-shine/bucketfs/vfs"

	defaultMaxObjectSize = 30 << 30
)

// Config tunes listing, mutation and upload behavior.
type Config struct {
	// PublicBaseURL is prepended to object keys to build download URLs.
	PublicBaseURL string `yaml:"public_base_url" validate:"omitempty,url"`

	// ListConcurrency bounds the folder file counts computed in parallel per listing.
	ListConcurrency int `yaml:"list_concurrency" default:"8" validate:"min=1"`

	// MutationConcurrency bounds the copy+delete pairs in flight per folder rename or move.
	MutationConcurrency int `yaml:"mutation_concurrency" default:"16" validate:"min=1"`

	// ListPageSize is the MaxKeys sent with every list request.
	ListPageSize int `yaml:"list_page_size" default:"1000" validate:"min=1,max=1000"`

	// MaxObjectSize is the largest accepted upload in bytes.
	MaxObjectSize int64 `yaml:"max_object_size" default:"32212254720" validate:"min=1"`

	// UploadPartSize is the multipart chunk size in bytes. S3 requires at least 5 MiB.
	UploadPartSize uint64 `yaml:"upload_part_size" default:"5242880" validate:"min=5242880"`

	// UploadConcurrency is the number of parts uploaded in parallel per file.
	UploadConcurrency uint `yaml:"upload_concurrency" default:"4" validate:"min=1"`
}

func (c Config) withDefaults() Config {
	if c.ListConcurrency <= 0 {
		c.ListConcurrency = 1
	}
	if c.MutationConcurrency <= 0 {
		c.MutationConcurrency = 1
	}
	if c.ListPageSize <= 0 {
		c.ListPageSize = objstore.DefaultDeleteBatchLimit
	}
	if c.MaxObjectSize <= 0 {
		c.MaxObjectSize = defaultMaxObjectSize
	}
	if c.UploadConcurrency == 0 {
		c.UploadConcurrency = 1
	}
	return c
}

// FS is the virtual filesystem.
type FS struct {
	store  objstore.ObjectStore
	cfg    Config
	log    logger.Logger
	tracer trace.Tracer
}

// New creates an FS over store.
func New(store objstore.ObjectStore, cfg Config, log logger.Logger) *FS {
	return &FS{
		store:  store,
		cfg:    cfg.withDefaults(),
		log:    log.Named("vfs"),
		tracer: otel.Tracer(tracerName),
	}
}

// Ping checks that the bucket can be listed.
func (f *FS) Ping(ctx context.Context) error {
	_, err := f.store.List(ctx, objstore.ListInput{Prefix: vpath.Root.String(), MaxKeys: 1})
	return errx.Wrap(err)
}

func (f *FS) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return f.tracer.Start(ctx, "vfs."+name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func invalidPath(msg, path string) error {
	return errx.New(
		msg,
		errx.WithCode(CodeInvalidPath),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(errx.D{"path": path}),
	)
}
