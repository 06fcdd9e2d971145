package metrics

import (
	"context"
	"io"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/bucketfs/objstore"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// InstrumentStore wraps s so that every call is counted and timed.
func (m *Metrics) InstrumentStore(s objstore.ObjectStore) objstore.ObjectStore {
	return &instrumentedStore{next: s, m: m}
}

type instrumentedStore struct {
	next objstore.ObjectStore
	m    *Metrics
}

func (i *instrumentedStore) observe(op string, start time.Time, err error) {
	i.m.StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err == nil {
		i.m.StoreCalls.WithLabelValues(op, statusOK).Inc()
		return
	}

	i.m.StoreCalls.WithLabelValues(op, statusError).Inc()
	i.m.StoreErrors.WithLabelValues(op, errx.AsErrorX(err).Code()).Inc()
}

func (i *instrumentedStore) List(ctx context.Context, in objstore.ListInput) (*objstore.ListPage, error) {
	start := time.Now()
	page, err := i.next.List(ctx, in)
	i.observe("list", start, err)
	return page, errx.Wrap(err)
}

func (i *instrumentedStore) PutEmpty(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.PutEmpty(ctx, key)
	i.observe("put_empty", start, err)
	return errx.Wrap(err)
}

func (i *instrumentedStore) Copy(ctx context.Context, src, dst string) error {
	start := time.Now()
	err := i.next.Copy(ctx, src, dst)
	i.observe("copy", start, err)
	return errx.Wrap(err)
}

func (i *instrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.Delete(ctx, key)
	i.observe("delete", start, err)
	return errx.Wrap(err)
}

func (i *instrumentedStore) DeleteBatch(ctx context.Context, keys []string) error {
	start := time.Now()
	err := i.next.DeleteBatch(ctx, keys)
	i.observe("delete_batch", start, err)
	return errx.Wrap(err)
}

func (i *instrumentedStore) DeleteBatchLimit() int {
	return i.next.DeleteBatchLimit()
}

// Upload counts streamed bytes as they are reported, chaining the caller's progress callback.
func (i *instrumentedStore) Upload(
	ctx context.Context,
	key string,
	body io.Reader,
	opts objstore.UploadOptions,
) (*objstore.ObjectInfo, error) {
	progress := opts.Progress
	opts.Progress = func(n int64) {
		i.m.UploadedBytes.Add(float64(n))
		if progress != nil {
			progress(n)
		}
	}

	start := time.Now()
	info, err := i.next.Upload(ctx, key, body, opts)
	i.observe("upload", start, err)
	return info, errx.Wrap(err)
}
