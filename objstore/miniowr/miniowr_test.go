package miniowr

import (
	"errors"
	"testing"

	"github.com/code19m/errx"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"github.com/rise-and-shine/bucketfs/objstore"
)

func TestWrapMinioError(t *testing.T) {
	c := &Client{bucket: "files"}

	tests := []struct {
		name     string
		err      error
		wantCode string
		wantType errx.Type
	}{
		{
			name:     "missing key",
			err:      minio.ErrorResponse{Code: codeNoSuchKey, StatusCode: 404},
			wantCode: objstore.CodeObjectNotFound,
			wantType: errx.T_NotFound,
		},
		{
			name:     "missing bucket",
			err:      minio.ErrorResponse{Code: codeNoSuchBucket, StatusCode: 404},
			wantCode: objstore.CodeStoreUnavailable,
			wantType: errx.T_Internal,
		},
		{
			name:     "network",
			err:      errors.New("dial tcp: connection refused"),
			wantCode: objstore.CodeStoreUnavailable,
			wantType: errx.T_Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.wrapMinioError(tt.err, "copy", "a/b.txt")

			e := errx.AsErrorX(err)
			assert.Equal(t, tt.wantCode, e.Code())
			assert.Equal(t, tt.wantType, e.Type())
		})
	}
}

func TestProgressFunc(t *testing.T) {
	var total int64
	r := progressFunc(func(n int64) { total += n })

	n, err := r.Read(make([]byte, 42))
	assert.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.Equal(t, int64(42), total)
}
