package vfs

// Error codes returned by filesystem operations.
const (
	// CodeInvalidPath is returned for paths that cannot address an object or folder.
	CodeInvalidPath = "INVALID_PATH"

	// CodeInvalidDestination is returned when a folder would be moved into itself.
	CodeInvalidDestination = "INVALID_DESTINATION"

	// CodePartialFailure is returned when a multi-key operation stopped after mutating some keys.
	CodePartialFailure = "PARTIAL_FAILURE"

	// CodePayloadTooLarge is returned when an upload exceeds the configured object size ceiling.
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)
