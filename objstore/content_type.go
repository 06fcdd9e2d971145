package objstore

import (
	"bufio"
	"errors"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// ContentTypeOctetStream is the generic binary content type.
const ContentTypeOctetStream = "application/octet-stream"

// sniffLen is the number of leading bytes inspected for content type detection.
const sniffLen = 3072

// SniffContentType returns declared unless it is empty or generic, in which case the type is
// detected from the first bytes of r. The returned reader must be used in place of r:
// it replays the inspected bytes, so nothing beyond sniffLen is held in memory.
func SniffContentType(declared string, r io.Reader) (string, io.Reader) {
	if declared != "" && declared != ContentTypeOctetStream {
		return declared, r
	}

	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return ContentTypeOctetStream, br
	}
	if len(head) == 0 {
		return ContentTypeOctetStream, br
	}

	return mimetype.Detect(head).String(), br
}
