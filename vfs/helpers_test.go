package vfs_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/bucketfs/objstore"
	"github.com/rise-and-shine/bucketfs/objstore/memstore"
	"github.com/rise-and-shine/bucketfs/observability/logger"
	"github.com/rise-and-shine/bucketfs/vfs"
)

func newFS(store objstore.ObjectStore, cfg vfs.Config) *vfs.FS {
	return vfs.New(store, cfg, logger.Nop())
}

func seed(s *memstore.Store, keys ...string) {
	for _, k := range keys {
		s.Put(k, []byte("content of "+k))
	}
}

func injected(op, key string) error {
	return errx.New(
		"injected failure",
		errx.WithCode(objstore.CodeStoreUnavailable),
		errx.WithDetails(errx.D{"operation": op, "key": key}),
	)
}

// faultStore wraps a memstore and fails selected calls.
type faultStore struct {
	*memstore.Store

	mu sync.Mutex
	// failCopy holds source keys whose next copy fails.
	failCopy map[string]bool
	// failDeletePrefix makes every delete of a key below it fail.
	failDeletePrefix string
	failList         bool

	deleteBatchCalls atomic.Int64
	copyCalls        atomic.Int64
}

func newFaultStore(s *memstore.Store) *faultStore {
	return &faultStore{Store: s, failCopy: make(map[string]bool)}
}

func (f *faultStore) failNextCopy(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failCopy[key] = true
}

func (f *faultStore) List(ctx context.Context, in objstore.ListInput) (*objstore.ListPage, error) {
	if f.failList {
		return nil, injected("list", in.Prefix)
	}
	return f.Store.List(ctx, in)
}

func (f *faultStore) Copy(ctx context.Context, src, dst string) error {
	f.copyCalls.Add(1)

	f.mu.Lock()
	fail := f.failCopy[src]
	delete(f.failCopy, src)
	f.mu.Unlock()

	if fail {
		return injected("copy", src)
	}
	return f.Store.Copy(ctx, src, dst)
}

func (f *faultStore) Delete(ctx context.Context, key string) error {
	if f.failDeletePrefix != "" && strings.HasPrefix(key, f.failDeletePrefix) {
		return injected("delete", key)
	}
	return f.Store.Delete(ctx, key)
}

func (f *faultStore) DeleteBatch(ctx context.Context, keys []string) error {
	f.deleteBatchCalls.Add(1)
	for _, k := range keys {
		if f.failDeletePrefix != "" && strings.HasPrefix(k, f.failDeletePrefix) {
			return injected("delete_batch", k)
		}
	}
	return f.Store.DeleteBatch(ctx, keys)
}
