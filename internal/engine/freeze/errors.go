package freeze

import (
	"errors"
	"fmt"
)

// Errors returned by freeze operations.
var (
	// ErrInvalidRange indicates a range with a negative start or end < start.
	ErrInvalidRange = errors.New("invalid row range")

	// ErrFrozenRow indicates a structural edit touched a frozen row.
	ErrFrozenRow = errors.New("frozen row")
)

// FrozenRowError is returned when an insert or delete intersects a frozen range.
// The edit was not applied. Retrying only makes sense with a different target row.
type FrozenRowError struct {
	// Op is the rejected operation ("insert", "remove").
	Op string
	// Probe is the row span the operation would have touched.
	Probe RowRange
	// Frozen is the first frozen range the probe intersected.
	Frozen RowRange
}

// Error implements the error interface.
func (e *FrozenRowError) Error() string {
	return fmt.Sprintf("can't %s text in frozen line: rows %s intersect frozen %s", e.Op, e.Probe, e.Frozen)
}

// Unwrap returns ErrFrozenRow.
func (e *FrozenRowError) Unwrap() error {
	return ErrFrozenRow
}

// IsFrozenRow reports whether err is a frozen row violation.
func IsFrozenRow(err error) bool {
	return errors.Is(err, ErrFrozenRow)
}
