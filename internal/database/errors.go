package database

import "errors"

// Error kinds surfaced to the transport layer. Handlers map these onto HTTP
// statuses; nothing below this package knows about HTTP.
var (
	// ErrNotFound means a referenced word, group, activity or session id
	// does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReference means an otherwise well-formed request references
	// records that don't belong together, e.g. a review for a word outside
	// the session's group.
	ErrInvalidReference = errors.New("invalid reference")
)
