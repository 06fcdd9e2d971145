package api

const (
	// CodeInvalidMultipart is returned when an upload body is not a readable multipart form.
	CodeInvalidMultipart = "INVALID_MULTIPART"

	// CodeNoFiles is returned when an upload form carries no file part.
	CodeNoFiles = "NO_FILES"
)
