package objstore

// Error codes for object store operations.
const (
	// CodeObjectNotFound is returned when no object exists at the requested key.
	CodeObjectNotFound = "OBJECT_NOT_FOUND"

	// CodeStoreUnavailable is returned when the store could not be reached or refused the request.
	CodeStoreUnavailable = "STORE_UNAVAILABLE"

	// CodeBatchTooLarge is returned when DeleteBatch receives more keys than the store accepts.
	CodeBatchTooLarge = "DELETE_BATCH_TOO_LARGE"
)
