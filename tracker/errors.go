package tracker

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	ErrAPIKeyRequired = errors.New("tracker api key is required")
	ErrURLRequired    = errors.New("tracker url is required")
)

// Mutation errors. The API can report success=false without an error
// entry, so these carry their own sentinels.
var (
	ErrIssueCreateRejected = errors.New("issue create was rejected")
	ErrIssueUpdateRejected = errors.New("issue update was rejected")
)

// GraphQLError represents in-band errors returned by the GraphQL API
// (a 200 response with an errors array).
type GraphQLError struct {
	// Operation is the GraphQL operation that failed.
	Operation string

	// Messages are the error messages from the API.
	Messages []string
}

// Error implements the error interface.
func (e *GraphQLError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("linear %s failed: %s", e.Operation, e.Messages[0])
	}
	return fmt.Sprintf("linear %s failed", e.Operation)
}
