package editor

import (
	"errors"
	"fmt"
)

// Errors returned by editor operations.
var (
	// ErrPageNotFound indicates no page has the given id.
	ErrPageNotFound = errors.New("page not found")

	// ErrDuplicatePage indicates a page with the same id is already open.
	ErrDuplicatePage = errors.New("page already open")

	// ErrPageFixed indicates an attempt to close a fixed page.
	ErrPageFixed = errors.New("page is fixed")

	// ErrPageLimit indicates adding or closing a page would leave the page
	// count outside the configured limits.
	ErrPageLimit = errors.New("page limit exceeded")

	// ErrUnknownMode indicates a mode that is not registered or not supported.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrUnknownTheme indicates a theme that is not registered or not supported.
	ErrUnknownTheme = errors.New("unknown theme")

	// ErrModeChangeDisabled indicates mode changes are turned off.
	ErrModeChangeDisabled = errors.New("mode change disabled")

	// ErrNoActivePage indicates there is no active page.
	ErrNoActivePage = errors.New("no active page")
)

// PageLimitError describes a page count outside the configured limits.
type PageLimitError struct {
	Count int // Page count the operation would produce
	Min   int // Lower limit, negative if unbounded
	Max   int // Upper limit, negative if unbounded
}

// Error implements the error interface.
func (e *PageLimitError) Error() string {
	if e.Min >= 0 && e.Count < e.Min {
		return fmt.Sprintf("the number of pages (%d) is less than the page-limit %d", e.Count, e.Min)
	}
	return fmt.Sprintf("the number of pages (%d) is greater than the page-limit %d", e.Count, e.Max)
}

// Unwrap returns ErrPageLimit.
func (e *PageLimitError) Unwrap() error {
	return ErrPageLimit
}

// ValidPageLimit checks whether changing the page count from length by inc
// keeps it within limit ([min, max], negative bounds disabled).
func ValidPageLimit(length int, limit [2]int, inc int) error {
	n := length + inc
	if limit[0] >= 0 && n < limit[0] {
		return &PageLimitError{Count: n, Min: limit[0], Max: limit[1]}
	}
	if limit[1] >= 0 && n > limit[1] {
		return &PageLimitError{Count: n, Min: limit[0], Max: limit[1]}
	}
	return nil
}
