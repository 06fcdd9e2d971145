package memstore_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/bucketfs/objstore"
	"github.com/rise-and-shine/bucketfs/objstore/memstore"
)

func seed(s *memstore.Store, keys ...string) {
	for _, k := range keys {
		s.Put(k, []byte(k))
	}
}

func TestList_DelimiterGroupsImmediateChildren(t *testing.T) {
	s := memstore.New()
	seed(s, "docs/", "docs/a.txt", "docs/sub/b.txt", "docs/sub/deep/c.txt", "docs/zz/", "root.txt")

	page, err := s.List(t.Context(), objstore.ListInput{Prefix: "docs/", Delimiter: "/"})
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/sub/", "docs/zz/"}, page.CommonPrefixes)

	keys := make([]string, 0, len(page.Objects))
	for _, o := range page.Objects {
		keys = append(keys, o.Key)
	}
	assert.Equal(t, []string{"docs/", "docs/a.txt"}, keys)
	assert.Empty(t, page.NextContinuationToken)
}

func TestList_PaginatesWithoutDelimiter(t *testing.T) {
	s := memstore.New(memstore.WithPageSize(3))
	for i := range 10 {
		s.Put(fmt.Sprintf("f/%02d", i), nil)
	}

	var all []string
	err := objstore.Walk(t.Context(), s, objstore.ListInput{Prefix: "f/"}, func(p *objstore.ListPage) error {
		assert.LessOrEqual(t, len(p.Objects), 3)
		for _, o := range p.Objects {
			all = append(all, o.Key)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, all, 10)
	assert.Equal(t, "f/00", all[0])
	assert.Equal(t, "f/09", all[9])
}

func TestList_PaginatesCommonPrefixes(t *testing.T) {
	s := memstore.New(memstore.WithPageSize(2))
	seed(s, "a/1", "a/2", "b/1", "c/1", "c/2", "c/3", "d.txt")

	var prefixes, files []string
	pages := 0
	err := objstore.Walk(t.Context(), s, objstore.ListInput{Delimiter: "/"}, func(p *objstore.ListPage) error {
		pages++
		prefixes = append(prefixes, p.CommonPrefixes...)
		for _, o := range p.Objects {
			files = append(files, o.Key)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a/", "b/", "c/"}, prefixes)
	assert.Equal(t, []string{"d.txt"}, files)
	assert.Equal(t, 2, pages)
}

func TestCopy_MissingSource(t *testing.T) {
	s := memstore.New()

	err := s.Copy(t.Context(), "nope", "dst")
	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, objstore.CodeObjectNotFound))
}

func TestDelete_MissingKeySucceeds(t *testing.T) {
	s := memstore.New()
	require.NoError(t, s.Delete(t.Context(), "missing"))
}

func TestDeleteBatch_EnforcesLimit(t *testing.T) {
	s := memstore.New(memstore.WithDeleteBatchLimit(2))
	seed(s, "a", "b", "c")

	err := s.DeleteBatch(t.Context(), []string{"a", "b", "c"})
	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, objstore.CodeBatchTooLarge))

	require.NoError(t, s.DeleteBatch(t.Context(), []string{"a", "b"}))
	assert.Equal(t, []string{"c"}, s.Keys())
}

func TestUpload_ReportsProgress(t *testing.T) {
	s := memstore.New()
	body := bytes.Repeat([]byte("x"), 10_000)

	var reported int64
	info, err := s.Upload(t.Context(), "big.bin", bytes.NewReader(body), objstore.UploadOptions{
		ContentType: "application/octet-stream",
		Progress:    func(n int64) { reported += n },
	})
	require.NoError(t, err)

	assert.Equal(t, int64(len(body)), info.Size)
	assert.Equal(t, int64(len(body)), reported)

	got, ok := s.Get("big.bin")
	require.True(t, ok)
	assert.Equal(t, body, got)
}
