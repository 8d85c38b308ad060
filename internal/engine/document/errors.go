package document

import "errors"

// Errors returned by document operations.
var (
	// ErrClosed indicates the document was closed.
	ErrClosed = errors.New("document is closed")

	// ErrMarkerNotFound indicates an unknown marker id.
	ErrMarkerNotFound = errors.New("marker not found")
)
