// Package miniowr provides a MinIO client implementation of objstore.ObjectStore.
// It works against any S3 compatible service, including Cloudflare R2.
package miniowr

import (
	"context"
	"io"

	"github.com/code19m/errx"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/rise-and-shine/bucketfs/objstore"
)

const (
	codeNoSuchKey    = "NoSuchKey"
	codeNoSuchBucket = "NoSuchBucket"
)

// Client implements objstore.ObjectStore using MinIO.
type Client struct {
	client *minio.Client
	core   *minio.Core
	bucket string
}

// New creates a new client. When cfg.CreateBucket is set, the bucket is created if missing.
func New(ctx context.Context, cfg Config) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	c := &Client{
		client: client,
		core:   &minio.Core{Client: client},
		bucket: cfg.Bucket,
	}

	if cfg.CreateBucket {
		err = c.ensureBucket(ctx, cfg.Region)
		if err != nil {
			return nil, errx.Wrap(err)
		}
	}

	return c, nil
}

func (c *Client) ensureBucket(ctx context.Context, region string) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return c.wrapMinioError(err, "bucket_exists", "")
	}
	if exists {
		return nil
	}

	err = c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{Region: region})
	if err != nil {
		return c.wrapMinioError(err, "make_bucket", "")
	}
	return nil
}

// List implements objstore.ObjectStore.
func (c *Client) List(ctx context.Context, in objstore.ListInput) (*objstore.ListPage, error) {
	// Core.ListObjectsV2 does not take a context.
	if err := ctx.Err(); err != nil {
		return nil, errx.Wrap(err)
	}

	res, err := c.core.ListObjectsV2(c.bucket, in.Prefix, "", in.ContinuationToken, in.Delimiter, in.MaxKeys)
	if err != nil {
		return nil, c.wrapMinioError(err, "list", in.Prefix)
	}

	page := &objstore.ListPage{
		CommonPrefixes: make([]string, 0, len(res.CommonPrefixes)),
		Objects:        make([]objstore.ObjectInfo, 0, len(res.Contents)),
	}
	for _, p := range res.CommonPrefixes {
		page.CommonPrefixes = append(page.CommonPrefixes, p.Prefix)
	}
	for _, o := range res.Contents {
		page.Objects = append(page.Objects, objstore.ObjectInfo{
			Key:          o.Key,
			Size:         o.Size,
			ContentType:  o.ContentType,
			ETag:         o.ETag,
			LastModified: o.LastModified,
		})
	}
	if res.IsTruncated {
		page.NextContinuationToken = res.NextContinuationToken
	}

	return page, nil
}

// PutEmpty implements objstore.ObjectStore.
func (c *Client) PutEmpty(ctx context.Context, key string) error {
	_, err := c.client.PutObject(ctx, c.bucket, key, emptyReader{}, 0, minio.PutObjectOptions{})
	if err != nil {
		return c.wrapMinioError(err, "put_empty", key)
	}
	return nil
}

// Copy implements objstore.ObjectStore.
func (c *Client) Copy(ctx context.Context, src, dst string) error {
	_, err := c.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: c.bucket, Object: dst},
		minio.CopySrcOptions{Bucket: c.bucket, Object: src},
	)
	if err != nil {
		return c.wrapMinioError(err, "copy", src)
	}
	return nil
}

// Delete implements objstore.ObjectStore.
func (c *Client) Delete(ctx context.Context, key string) error {
	err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != codeNoSuchKey {
		return c.wrapMinioError(err, "delete", key)
	}
	return nil
}

// DeleteBatch implements objstore.ObjectStore.
func (c *Client) DeleteBatch(ctx context.Context, keys []string) error {
	if len(keys) > objstore.DefaultDeleteBatchLimit {
		return errx.New(
			"too many keys in one delete batch",
			errx.WithCode(objstore.CodeBatchTooLarge),
			errx.WithDetails(errx.D{"keys": len(keys), "limit": objstore.DefaultDeleteBatchLimit}),
		)
	}

	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var failed []string
	var firstErr error
	for rErr := range c.client.RemoveObjects(ctx, c.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if minio.ToErrorResponse(rErr.Err).Code == codeNoSuchKey {
			continue
		}
		failed = append(failed, rErr.ObjectName)
		if firstErr == nil {
			firstErr = rErr.Err
		}
	}

	if firstErr != nil {
		return errx.Wrap(
			c.wrapMinioError(firstErr, "delete_batch", ""),
			errx.WithDetails(errx.D{"failed_keys": failed}),
		)
	}
	return nil
}

// DeleteBatchLimit implements objstore.ObjectStore.
func (c *Client) DeleteBatchLimit() int {
	return objstore.DefaultDeleteBatchLimit
}

// Upload implements objstore.ObjectStore.
// The object size is unknown up front, so the client streams fixed size parts.
func (c *Client) Upload(
	ctx context.Context,
	key string,
	body io.Reader,
	opts objstore.UploadOptions,
) (*objstore.ObjectInfo, error) {
	putOpts := minio.PutObjectOptions{
		ContentType:           opts.ContentType,
		PartSize:              opts.PartSize,
		NumThreads:            opts.Concurrency,
		ConcurrentStreamParts: opts.Concurrency > 1,
	}
	if opts.Progress != nil {
		putOpts.Progress = progressFunc(opts.Progress)
	}

	info, err := c.client.PutObject(ctx, c.bucket, key, body, -1, putOpts)
	if err != nil {
		return nil, c.wrapMinioError(err, "upload", key)
	}

	return &objstore.ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  opts.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}, nil
}

// wrapMinioError converts MinIO errors to objstore error codes.
func (c *Client) wrapMinioError(err error, operation, key string) error {
	resp := minio.ToErrorResponse(err)
	details := errx.D{
		"operation":  operation,
		"bucket":     c.bucket,
		"key":        key,
		"store_code": resp.Code,
	}

	switch resp.Code {
	case codeNoSuchKey:
		return errx.New(
			"object not found",
			errx.WithCode(objstore.CodeObjectNotFound),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(details),
		)
	case codeNoSuchBucket:
		details["bucket_missing"] = true
	}

	return errx.Wrap(
		err,
		errx.WithCode(objstore.CodeStoreUnavailable),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(details),
	)
}

// progressFunc adapts a byte counter callback to the io.Reader MinIO reports progress through.
type progressFunc func(n int64)

func (f progressFunc) Read(p []byte) (int, error) {
	f(int64(len(p)))
	return len(p), nil
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, io.EOF }
