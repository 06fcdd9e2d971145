package vfs

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/code19m/errx"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/rise-and-shine/bucketfs/objstore"
	"github.com/rise-and-shine/bucketfs/sanitize"
	"github.com/rise-and-shine/bucketfs/vpath"
)

// CreateFolder sanitizes path and writes its folder marker.
// It is idempotent and returns the prefix actually created.
func (f *FS) CreateFolder(ctx context.Context, path string) (_ vpath.Prefix, err error) {
	ctx, span := f.startSpan(ctx, "CreateFolder", attribute.String("path", path))
	defer func() { endSpan(span, err) }()

	prefix := sanitize.Path(path)
	if prefix.IsRoot() {
		return "", invalidPath("folder path is empty", path)
	}

	err = f.store.PutEmpty(ctx, prefix.Marker().String())
	if err != nil {
		return "", errx.Wrap(err)
	}

	f.log.WithContext(ctx).With("path", prefix).Info("folder created")
	return prefix, nil
}

// Rename moves a file or folder to newPath. The last segment of newPath is sanitized.
// Renaming onto the current location is a no-op.
func (f *FS) Rename(ctx context.Context, oldPath, newPath string, isFolder bool) (err error) {
	ctx, span := f.startSpan(ctx, "Rename",
		attribute.String("old_path", oldPath),
		attribute.String("new_path", newPath),
		attribute.Bool("is_folder", isFolder),
	)
	defer func() { endSpan(span, err) }()

	newPath = vpath.NewKey(newPath).String()
	name := vpath.BaseName(newPath)
	if name == "" {
		return invalidPath("new name is empty", newPath)
	}
	parent := vpath.Parent(newPath)

	if !isFolder {
		src := vpath.NewKey(oldPath)
		if src == "" || src.IsFolderMarker() {
			return invalidPath("file path must not be empty or end with a separator", oldPath)
		}
		dst := parent.File(sanitize.Name(name))
		if dst == src {
			return nil
		}
		return f.moveFile(ctx, src, dst, nil)
	}

	src := vpath.NewPrefix(oldPath)
	if src.IsRoot() {
		return invalidPath("the root folder cannot be renamed", oldPath)
	}
	dst := parent.Folder(sanitize.Name(name))
	if dst == src {
		return nil
	}
	if dst.Within(src) {
		return invalidDestination(src, dst)
	}

	return f.moveFolder(ctx, src, dst)
}

// Move relocates items into target, one item at a time in input order.
// It returns the number of items moved. The first failure stops the batch; items moved
// before it stay moved. Items already located in target are skipped, and so are files
// that an earlier attempt or a folder of the same batch already moved.
func (f *FS) Move(ctx context.Context, items []vpath.Item, target vpath.Prefix) (_ int, err error) {
	ctx, span := f.startSpan(ctx, "Move",
		attribute.Int("items", len(items)),
		attribute.String("target", target.String()),
	)
	defer func() { endSpan(span, err) }()

	// Reject every self-containing move before mutating anything.
	for _, item := range items {
		if !item.IsFolder {
			continue
		}
		src := item.Prefix()
		if src.IsRoot() {
			return 0, invalidPath("the root folder cannot be moved", item.Path)
		}
		if target.Within(src) {
			return 0, invalidDestination(src, target)
		}
	}

	folders := lo.FilterMap(items, func(item vpath.Item, _ int) (vpath.Prefix, bool) {
		return item.Prefix(), item.IsFolder
	})

	moved := 0
	for _, item := range items {
		err = f.moveItem(ctx, item, target, folders)
		if err != nil {
			return moved, errx.Wrap(err, errx.WithDetails(errx.D{
				"moved_items": moved,
				"failed_path": item.Path,
				"target":      target.String(),
			}))
		}
		moved++
	}

	return moved, nil
}

func (f *FS) moveItem(ctx context.Context, item vpath.Item, target vpath.Prefix, folders []vpath.Prefix) error {
	if item.IsFolder {
		src := item.Prefix()
		dst := target.Folder(item.Name())
		if dst == src {
			return nil
		}
		return f.moveFolder(ctx, src, dst)
	}

	src := item.Key()
	dst := target.File(item.Name())
	if dst == src {
		return nil
	}
	return f.moveFile(ctx, src, dst, folders)
}

// moveFile copies src to dst and deletes src. A missing source counts as already moved
// when dst exists or when src lies below one of folders, which were moved along with it.
func (f *FS) moveFile(ctx context.Context, src, dst vpath.Key, folders []vpath.Prefix) error {
	err := f.copyAndDelete(ctx, src, dst)
	if err == nil || !errx.IsCodeIn(err, objstore.CodeObjectNotFound) {
		return err
	}

	if lo.ContainsBy(folders, func(p vpath.Prefix) bool { return p.Contains(src) }) {
		f.log.WithContext(ctx).With("path", src).Info("file already moved with its folder")
		return nil
	}

	ok, existsErr := f.exists(ctx, dst)
	if existsErr != nil {
		return errx.Wrap(existsErr)
	}
	if !ok {
		return err
	}

	f.log.WithContext(ctx).With("from", src, "to", dst).Info("file already moved")
	return nil
}

// exists reports whether an object is stored at exactly key.
func (f *FS) exists(ctx context.Context, key vpath.Key) (bool, error) {
	page, err := f.store.List(ctx, objstore.ListInput{Prefix: key.String(), MaxKeys: 1})
	if err != nil {
		return false, errx.Wrap(err)
	}
	return len(page.Objects) > 0 && page.Objects[0].Key == key.String(), nil
}

// moveFolder rebases every key below src onto dst.
// The source listing is taken in full before the first copy, so keys written under dst
// are never picked up again even when dst sorts after src.
func (f *FS) moveFolder(ctx context.Context, src, dst vpath.Prefix) error {
	started := time.Now()

	objects, err := objstore.ListAll(ctx, f.store, src.String(), f.cfg.ListPageSize)
	if err != nil {
		return errx.Wrap(err)
	}
	if len(objects) == 0 {
		return nil
	}

	// copied counts keys whose copy landed, done counts finished copy+delete pairs.
	var copied, done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.MutationConcurrency)

	for _, obj := range objects {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errx.Wrap(err)
			}
			key := vpath.Key(obj.Key)
			err := f.copyAndDelete(gctx, key, key.Rebase(src, dst))
			if err != nil {
				if isCopied(err) {
					copied.Add(1)
				}
				return err
			}
			copied.Add(1)
			done.Add(1)
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		if copied.Load() == 0 {
			return errx.Wrap(err)
		}
		return errx.Wrap(
			err,
			errx.WithCode(CodePartialFailure),
			errx.WithType(errx.T_Internal),
			errx.WithDetails(errx.D{
				"from":        src.String(),
				"to":          dst.String(),
				"processed":   done.Load(),
				"copied_keys": copied.Load(),
				"total":       len(objects),
			}),
		)
	}

	f.log.WithContext(ctx).With(
		"from", src,
		"to", dst,
		"keys", len(objects),
		"duration", time.Since(started),
	).Info("folder moved")
	return nil
}

// isCopied reports whether a copyAndDelete error happened after the copy succeeded.
func isCopied(err error) bool {
	copied, _ := errx.AsErrorX(err).Details()["copied"].(bool)
	return copied
}

// copyAndDelete performs a server-side copy of src to dst and then deletes src.
// The delete is only issued after the copy succeeded, and it ignores cancellation of ctx
// so that a copied key is never left behind because a sibling failed. A failed delete
// leaves the object present at both keys.
func (f *FS) copyAndDelete(ctx context.Context, src, dst vpath.Key) error {
	err := f.store.Copy(ctx, src.String(), dst.String())
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"step": "copy", "src": src.String(), "dst": dst.String()}))
	}

	err = f.store.Delete(context.WithoutCancel(ctx), src.String())
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{
			"step":   "delete",
			"src":    src.String(),
			"dst":    dst.String(),
			"copied": true,
		}))
	}

	return nil
}

// Delete removes a file, or a folder with everything below it.
// Deleting something that does not exist succeeds.
func (f *FS) Delete(ctx context.Context, item vpath.Item) (err error) {
	ctx, span := f.startSpan(ctx, "Delete",
		attribute.String("path", item.Path),
		attribute.Bool("is_folder", item.IsFolder),
	)
	defer func() { endSpan(span, err) }()

	if !item.IsFolder {
		key := item.Key()
		if key == "" {
			return invalidPath("file path is empty", item.Path)
		}
		return errx.Wrap(f.store.Delete(ctx, key.String()))
	}

	prefix := item.Prefix()
	if prefix.IsRoot() {
		return invalidPath("the root folder cannot be deleted", item.Path)
	}
	return f.deleteFolder(ctx, prefix)
}

// deleteFolder removes every key below prefix page by page,
// splitting each page into batches the store accepts.
func (f *FS) deleteFolder(ctx context.Context, prefix vpath.Prefix) error {
	deleted := 0
	batchLimit := f.store.DeleteBatchLimit()

	in := objstore.ListInput{Prefix: prefix.String(), MaxKeys: f.cfg.ListPageSize}
	err := objstore.Walk(ctx, f.store, in, func(page *objstore.ListPage) error {
		keys := lo.Map(page.Objects, func(o objstore.ObjectInfo, _ int) string { return o.Key })
		for _, batch := range lo.Chunk(keys, batchLimit) {
			err := f.store.DeleteBatch(ctx, batch)
			if err != nil {
				return errx.Wrap(err, errx.WithDetails(errx.D{"deleted": deleted}))
			}
			deleted += len(batch)
		}
		return nil
	})
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"operation": "delete_folder", "prefix": prefix.String()}))
	}

	f.log.WithContext(ctx).With("prefix", prefix, "keys", deleted).Info("folder deleted")
	return nil
}

// DeleteMultiple attempts to delete every item in input order.
// Failures do not stop the batch; they are reported together once all items were tried.
func (f *FS) DeleteMultiple(ctx context.Context, items []vpath.Item) (err error) {
	ctx, span := f.startSpan(ctx, "DeleteMultiple", attribute.Int("items", len(items)))
	defer func() { endSpan(span, err) }()

	var failed []string
	var firstErr error

	for _, item := range items {
		delErr := f.Delete(ctx, item)
		if delErr == nil {
			continue
		}
		f.log.WithContext(ctx).With("path", item.Path).Warnx(delErr)
		failed = append(failed, item.Path)
		if firstErr == nil {
			firstErr = delErr
		}
	}

	if firstErr == nil {
		return nil
	}

	return errx.Wrap(
		firstErr,
		errx.WithCode(CodePartialFailure),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{
			"failed_paths": failed,
			"failed":       len(failed),
			"total":        len(items),
		}),
	)
}

func invalidDestination(src, dst vpath.Prefix) error {
	return errx.New(
		"a folder cannot be moved into itself",
		errx.WithCode(CodeInvalidDestination),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(errx.D{"from": src.String(), "to": dst.String()}),
	)
}
