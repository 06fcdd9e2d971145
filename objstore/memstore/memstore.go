// Package memstore provides an in-memory implementation of objstore.ObjectStore.
//
// It follows S3 ListObjectsV2 semantics (lexicographic order, delimiter grouping,
// MaxKeys counting both keys and common prefixes, opaque continuation tokens) and is
// used for local development and tests. Uploaded bodies are held in memory.
package memstore

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/bucketfs/objstore"
)

const (
	defaultPageSize = 1000

	tokenKey    = "k:"
	tokenPrefix = "p:"
)

type object struct {
	data         []byte
	contentType  string
	lastModified time.Time
}

// Store is an in-memory object store.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object

	pageSize         int
	deleteBatchLimit int
	now              func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithPageSize caps the number of entries returned per List call.
func WithPageSize(n int) Option {
	return func(s *Store) {
		s.pageSize = n
	}
}

// WithDeleteBatchLimit sets the maximum number of keys accepted by DeleteBatch.
func WithDeleteBatchLimit(n int) Option {
	return func(s *Store) {
		s.deleteBatchLimit = n
	}
}

// WithClock overrides the time source used for LastModified.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		objects:          make(map[string]object),
		pageSize:         defaultPageSize,
		deleteBatchLimit: objstore.DefaultDeleteBatchLimit,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores data at key directly. Intended for seeding.
func (s *Store) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = object{data: data, lastModified: s.now()}
}

// Get returns the content stored at key.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	return obj.data, ok
}

// ContentType returns the content type recorded for key.
func (s *Store) ContentType(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.objects[key].contentType
}

// Keys returns all keys in lexicographic order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedKeys()
}

func (s *Store) sortedKeys() []string {
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// List implements objstore.ObjectStore.
func (s *Store) List(ctx context.Context, in objstore.ListInput) (*objstore.ListPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, errx.Wrap(err)
	}

	limit := s.pageSize
	if limit <= 0 {
		limit = defaultPageSize
	}
	if in.MaxKeys > 0 && in.MaxKeys < limit {
		limit = in.MaxKeys
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	page := &objstore.ListPage{}
	emitted := 0
	last := ""
	lastPrefix := ""

	for _, key := range s.sortedKeys() {
		if !strings.HasPrefix(key, in.Prefix) || s.consumed(key, in.ContinuationToken) {
			continue
		}

		entry, isPrefix := key, false
		if in.Delimiter != "" {
			rest := key[len(in.Prefix):]
			if idx := strings.Index(rest, in.Delimiter); idx >= 0 {
				entry, isPrefix = in.Prefix+rest[:idx+len(in.Delimiter)], true
			}
		}
		if isPrefix && entry == lastPrefix {
			continue
		}

		if emitted == limit {
			page.NextContinuationToken = last
			break
		}

		if isPrefix {
			page.CommonPrefixes = append(page.CommonPrefixes, entry)
			lastPrefix = entry
			last = tokenPrefix + entry
		} else {
			obj := s.objects[key]
			page.Objects = append(page.Objects, objstore.ObjectInfo{
				Key:          key,
				Size:         int64(len(obj.data)),
				ContentType:  obj.contentType,
				LastModified: obj.lastModified,
			})
			last = tokenKey + key
		}
		emitted++
	}

	return page, nil
}

// consumed reports whether key was already returned on a previous page.
func (s *Store) consumed(key, token string) bool {
	switch {
	case token == "":
		return false
	case strings.HasPrefix(token, tokenPrefix):
		p := strings.TrimPrefix(token, tokenPrefix)
		return key <= p || strings.HasPrefix(key, p)
	default:
		return key <= strings.TrimPrefix(token, tokenKey)
	}
}

// PutEmpty implements objstore.ObjectStore.
func (s *Store) PutEmpty(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return errx.Wrap(err)
	}

	s.Put(key, []byte{})
	return nil
}

// Copy implements objstore.ObjectStore.
func (s *Store) Copy(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return errx.Wrap(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[src]
	if !ok {
		return errx.New(
			"source object not found",
			errx.WithCode(objstore.CodeObjectNotFound),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(errx.D{"operation": "copy", "key": src}),
		)
	}

	obj.data = bytes.Clone(obj.data)
	obj.lastModified = s.now()
	s.objects[dst] = obj
	return nil
}

// Delete implements objstore.ObjectStore.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return errx.Wrap(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, key)
	return nil
}

// DeleteBatch implements objstore.ObjectStore.
func (s *Store) DeleteBatch(ctx context.Context, keys []string) error {
	if err := ctx.Err(); err != nil {
		return errx.Wrap(err)
	}

	if len(keys) > s.deleteBatchLimit {
		return errx.New(
			"too many keys in one delete batch",
			errx.WithCode(objstore.CodeBatchTooLarge),
			errx.WithDetails(errx.D{"keys": len(keys), "limit": s.deleteBatchLimit}),
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.objects, key)
	}
	return nil
}

// DeleteBatchLimit implements objstore.ObjectStore.
func (s *Store) DeleteBatchLimit() int {
	return s.deleteBatchLimit
}

// Upload implements objstore.ObjectStore.
func (s *Store) Upload(
	ctx context.Context,
	key string,
	body io.Reader,
	opts objstore.UploadOptions,
) (*objstore.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errx.Wrap(err)
	}

	var buf bytes.Buffer
	_, err := io.Copy(&buf, &progressReader{r: body, progress: opts.Progress})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	now := s.now()

	s.mu.Lock()
	s.objects[key] = object{data: buf.Bytes(), contentType: opts.ContentType, lastModified: now}
	s.mu.Unlock()

	return &objstore.ObjectInfo{
		Key:          key,
		Size:         int64(buf.Len()),
		ContentType:  opts.ContentType,
		LastModified: now,
	}, nil
}

type progressReader struct {
	r        io.Reader
	progress func(int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.progress != nil {
		p.progress(int64(n))
	}
	return n, err
}
