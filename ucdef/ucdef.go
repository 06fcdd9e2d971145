// Package ucdef defines the use case contracts exposed through the transport layer.
package ucdef

import "context"

// TypeUserAction is the use case type reported in logs and spans.
const TypeUserAction = "user_action"

// UserAction represents a synchronous operation triggered by a client request.
// The client waits for the result, so errors are returned directly as the response.
//
// Type parameters:
//   - I: Input data type (request payload)
//   - O: Output data type (response body)
//
// Examples: ListDirectory, CreateFolder, MoveMultiple
type UserAction[I, O any] interface {
	// OperationID returns a unique identifier for the use case.
	OperationID() string

	// Execute executes the use case.
	Execute(ctx context.Context, in I) (O, error)
}
