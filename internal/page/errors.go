package page

import "errors"

// Errors returned by page operations.
var (
	// ErrClosed indicates the page was closed.
	ErrClosed = errors.New("page is closed")

	// ErrNoHost indicates a page was created without a host document.
	ErrNoHost = errors.New("page requires a host document")
)
