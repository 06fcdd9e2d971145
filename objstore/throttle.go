package objstore

import (
	"context"
	"io"

	"github.com/code19m/errx"
	"golang.org/x/time/rate"
)

// Throttle wraps s so that every request first waits on limiter.
// A nil limiter returns s unchanged.
func Throttle(s ObjectStore, limiter *rate.Limiter) ObjectStore {
	if limiter == nil {
		return s
	}
	return &throttled{next: s, limiter: limiter}
}

type throttled struct {
	next    ObjectStore
	limiter *rate.Limiter
}

func (t *throttled) wait(ctx context.Context) error {
	return errx.Wrap(t.limiter.Wait(ctx))
}

func (t *throttled) List(ctx context.Context, in ListInput) (*ListPage, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	page, err := t.next.List(ctx, in)
	return page, errx.Wrap(err)
}

func (t *throttled) PutEmpty(ctx context.Context, key string) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	return errx.Wrap(t.next.PutEmpty(ctx, key))
}

func (t *throttled) Copy(ctx context.Context, src, dst string) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	return errx.Wrap(t.next.Copy(ctx, src, dst))
}

func (t *throttled) Delete(ctx context.Context, key string) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	return errx.Wrap(t.next.Delete(ctx, key))
}

func (t *throttled) DeleteBatch(ctx context.Context, keys []string) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	return errx.Wrap(t.next.DeleteBatch(ctx, keys))
}

func (t *throttled) DeleteBatchLimit() int {
	return t.next.DeleteBatchLimit()
}

// Upload is throttled once per object, not per part.
func (t *throttled) Upload(ctx context.Context, key string, body io.Reader, opts UploadOptions) (*ObjectInfo, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	info, err := t.next.Upload(ctx, key, body, opts)
	return info, errx.Wrap(err)
}
