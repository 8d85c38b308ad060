package freeze

import (
	"fmt"
	"strconv"
	"strings"
)

// RowRange is a closed interval of zero-based rows: [Start, End].
// A valid range has 0 <= Start <= End.
type RowRange struct {
	Start int // First frozen row (inclusive)
	End   int // Last frozen row (inclusive)
}

// NewRowRange creates a range, rejecting negative or inverted bounds.
func NewRowRange(start, end int) (RowRange, error) {
	r := RowRange{Start: start, End: end}
	if !r.IsValid() {
		return RowRange{}, fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	return r, nil
}

// ParseRowRange parses "start:end" or a single row "n".
func ParseRowRange(s string) (RowRange, error) {
	first, last, isPair := strings.Cut(strings.TrimSpace(s), ":")
	start, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return RowRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	end := start
	if isPair {
		if end, err = strconv.Atoi(strings.TrimSpace(last)); err != nil {
			return RowRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
		}
	}
	return NewRowRange(start, end)
}

// Row returns the single-row range [row, row].
func Row(row int) RowRange {
	return RowRange{Start: row, End: row}
}

// String returns a human-readable representation of the range.
func (r RowRange) String() string {
	return fmt.Sprintf("[%d,%d]", r.Start, r.End)
}

// IsValid returns true if 0 <= Start <= End.
func (r RowRange) IsValid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Len returns the number of rows covered.
func (r RowRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains returns true if row lies within the range.
func (r RowRange) Contains(row int) bool {
	return row >= r.Start && row <= r.End
}

// ContainsRange returns true if other lies entirely within this range.
// Equal ranges contain each other.
func (r RowRange) ContainsRange(other RowRange) bool {
	return r.Start <= other.Start && r.End >= other.End
}

// Intersects returns true if the ranges share at least one row.
func (r RowRange) Intersects(other RowRange) bool {
	return !(r.End < other.Start || r.Start > other.End)
}

// Inflate widens the range by n rows on each side.
// The start may become negative; the result is only used as a probe.
func (r RowRange) Inflate(n int) RowRange {
	return RowRange{Start: r.Start - n, End: r.End + n}
}

// Union returns the smallest range covering both ranges.
func (r RowRange) Union(other RowRange) RowRange {
	return RowRange{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

// Offset returns the range moved by delta rows.
func (r RowRange) Offset(delta int) RowRange {
	return RowRange{Start: r.Start + delta, End: r.End + delta}
}
