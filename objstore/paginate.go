package objstore

import (
	"context"

	"github.com/code19m/errx"
)

// Walk calls fn for every page of in, following continuation tokens until the store
// reports no further pages. in.ContinuationToken is used for the first request.
func Walk(ctx context.Context, s ObjectStore, in ListInput, fn func(*ListPage) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return errx.Wrap(err)
		}

		page, err := s.List(ctx, in)
		if err != nil {
			return errx.Wrap(err)
		}

		err = fn(page)
		if err != nil {
			return errx.Wrap(err)
		}

		if page.NextContinuationToken == "" {
			return nil
		}
		in.ContinuationToken = page.NextContinuationToken
	}
}

// ListAll returns every object under prefix across all pages, without a delimiter.
func ListAll(ctx context.Context, s ObjectStore, prefix string, pageSize int) ([]ObjectInfo, error) {
	var objects []ObjectInfo

	err := Walk(ctx, s, ListInput{Prefix: prefix, MaxKeys: pageSize}, func(page *ListPage) error {
		objects = append(objects, page.Objects...)
		return nil
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return objects, nil
}
