package vfs

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/code19m/errx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rise-and-shine/bucketfs/objstore"
	"github.com/rise-and-shine/bucketfs/sanitize"
	"github.com/rise-and-shine/bucketfs/vpath"
)

// progressLogStep is the number of uploaded bytes between two progress log entries.
const progressLogStep = 64 << 20

// UploadInput is one named byte stream to store under Prefix.
type UploadInput struct {
	Prefix      vpath.Prefix
	Name        string
	ContentType string
	Body        io.Reader
}

// UploadedFile describes a stored upload.
type UploadedFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Upload streams in.Body into the store under the sanitized name.
// The body is sent in parts and never held in memory as a whole.
func (f *FS) Upload(ctx context.Context, in UploadInput) (_ *UploadedFile, err error) {
	name := sanitize.Name(in.Name)
	key := in.Prefix.File(name)

	ctx, span := f.startSpan(ctx, "Upload", attribute.String("key", key.String()))
	defer func() { endSpan(span, err) }()

	contentType, body := objstore.SniffContentType(in.ContentType, in.Body)
	limited := &limitedReader{r: body, remaining: f.cfg.MaxObjectSize}

	log := f.log.WithContext(ctx).With("key", key.String(), "content_type", contentType)
	started := time.Now()

	var uploaded atomic.Int64
	info, err := f.store.Upload(ctx, key.String(), limited, objstore.UploadOptions{
		ContentType: contentType,
		PartSize:    f.cfg.UploadPartSize,
		Concurrency: f.cfg.UploadConcurrency,
		Progress: func(n int64) {
			total := uploaded.Add(n)
			if total/progressLogStep != (total-n)/progressLogStep {
				log.Debugf("upload progress: %d bytes", total)
			}
		},
	})
	if limited.exceeded {
		return nil, errx.New(
			"object exceeds the maximum allowed size",
			errx.WithCode(CodePayloadTooLarge),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"key": key.String(), "max_bytes": f.cfg.MaxObjectSize}),
		)
	}
	if err != nil {
		return nil, errx.Wrap(err)
	}

	log.With("size", info.Size, "duration", time.Since(started)).Info("upload finished")
	span.SetAttributes(attribute.Int64("size", info.Size))

	return &UploadedFile{Name: name, Path: key.String(), Size: info.Size}, nil
}

// errObjectTooLarge aborts the store upload once the size ceiling is crossed.
var errObjectTooLarge = errx.New("object too large", errx.WithCode(CodePayloadTooLarge)) //nolint:gochecknoglobals // sentinel

// limitedReader fails instead of truncating when more than remaining bytes are read.
type limitedReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.exceeded {
		return 0, errObjectTooLarge
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		l.exceeded = true
		return 0, errObjectTooLarge
	}
	return n, err
}
