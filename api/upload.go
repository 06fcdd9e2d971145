package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/bucketfs/http/server/forward"
	"github.com/rise-and-shine/bucketfs/http/server/middleware"
	"github.com/rise-and-shine/bucketfs/meta"
	"github.com/rise-and-shine/bucketfs/observability/logger"
	"github.com/rise-and-shine/bucketfs/val"
	"github.com/rise-and-shine/bucketfs/vfs"
	"github.com/rise-and-shine/bucketfs/vpath"
)

const (
	formFieldPrefix = "prefix"
	formFieldFiles  = "files"

	// maxPrefixFieldSize bounds the prefix form value read into memory.
	maxPrefixFieldSize = 4 << 10
)

// Uploader stores one byte stream. It is satisfied by *vfs.FS.
type Uploader interface {
	Upload(ctx context.Context, in vfs.UploadInput) (*vfs.UploadedFile, error)
}

// UploadResponse lists the stored files in form order.
type UploadResponse struct {
	Success bool               `json:"success"`
	Files   []vfs.UploadedFile `json:"files"`
}

type uploadHandler struct {
	uploader Uploader
	log      logger.Logger
}

func newUploadHandler(u Uploader) *uploadHandler {
	return &uploadHandler{uploader: u, log: logger.Named("http.upload")}
}

// handle streams every "files" part of a multipart body into the store, one part at a time.
// The destination prefix comes from the "prefix" query parameter, or else from a "prefix"
// form field sent before the file parts. A failed upload closes the connection, since the
// rest of the streamed body is left unread.
func (h *uploadHandler) handle(c *fiber.Ctx) (err error) {
	ctx := meta.InjectMetaToContext(c.UserContext(), map[meta.ContextKey]string{
		meta.Operation: "upload",
	})
	c.SetUserContext(ctx)
	log := h.log.WithContext(ctx)

	defer func() {
		if err != nil {
			c.Context().SetConnectionClose()
		}
	}()

	reader, err := multipartReader(c)
	if err != nil {
		return errx.Wrap(err)
	}

	counter := &countingReader{}
	defer func() { c.Locals(middleware.LocalBytesReceived, counter.n) }()

	prefix := c.Query(formFieldPrefix)
	files := []vfs.UploadedFile{}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return invalidMultipart(err)
		}

		switch {
		case part.FileName() == "" && part.FormName() == formFieldPrefix:
			if c.Query(formFieldPrefix) == "" {
				prefix, err = readField(part)
				if err != nil {
					return errx.Wrap(err)
				}
			}

		case part.FileName() != "" && part.FormName() == formFieldFiles:
			if !val.IsVirtualPath(prefix) {
				return invalidPrefix(prefix)
			}

			counter.r = part
			uploaded, err := h.uploader.Upload(ctx, vfs.UploadInput{
				Prefix:      vpath.NewPrefix(prefix),
				Name:        part.FileName(),
				ContentType: part.Header.Get(fiber.HeaderContentType),
				Body:        counter,
			})
			if err != nil {
				return errx.Wrap(err, errx.WithDetails(errx.D{"uploaded_files": len(files)}))
			}
			files = append(files, *uploaded)
		}

		if err := part.Close(); err != nil {
			return invalidMultipart(err)
		}
	}

	if len(files) == 0 {
		return errx.New(
			"no files in the upload form",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeNoFiles),
			errx.WithFields(errx.M{formFieldFiles: "at least one file is required"}),
		)
	}

	log.With("files", len(files), "bytes", counter.n).Info("upload request completed")

	_, err = forward.WriteJSON(c, UploadResponse{Success: true, Files: files})
	return errx.Wrap(err)
}

func multipartReader(c *fiber.Ctx) (*multipart.Reader, error) {
	mediaType, params, err := mime.ParseMediaType(c.Get(fiber.HeaderContentType))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		return nil, errx.New(
			"content type must be multipart/form-data with a boundary",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidMultipart),
			errx.WithDetails(errx.D{"content_type": c.Get(fiber.HeaderContentType)}),
		)
	}

	body := c.Request().BodyStream()
	if body == nil {
		body = bytes.NewReader(c.Body())
	}

	return multipart.NewReader(body, params["boundary"]), nil
}

func readField(part *multipart.Part) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(part, maxPrefixFieldSize))
	if err != nil {
		return "", invalidMultipart(err)
	}
	return string(raw), nil
}

func invalidMultipart(err error) error {
	return errx.Wrap(
		err,
		errx.WithType(errx.T_Validation),
		errx.WithCode(CodeInvalidMultipart),
	)
}

func invalidPrefix(prefix string) error {
	return errx.New(
		"invalid upload prefix",
		errx.WithType(errx.T_Validation),
		errx.WithCode(vfs.CodeInvalidPath),
		errx.WithFields(errx.M{formFieldPrefix: "must be a relative path without empty, '.' or '..' segments"}),
		errx.WithDetails(errx.D{"prefix": prefix}),
	)
}

// countingReader reads from the current part and keeps a running total across parts.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
