package document

import "fmt"

// Point is a zero-based row and column. Column counts grapheme clusters.
type Point struct {
	Row    int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	switch {
	case p.Row < other.Row:
		return -1
	case p.Row > other.Row:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// Range spans Start to End. Start <= End once created through NewRange.
type Range struct {
	Start Point
	End   Point
}

// NewRange creates a range, swapping the points if they are out of order.
func NewRange(a, b Point) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// RowRange returns a range covering whole rows from startRow to endRow.
func RowRange(startRow, endRow int) Range {
	return NewRange(Point{Row: startRow}, Point{Row: endRow})
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s]", r.Start, r.End)
}

// IsEmpty returns true if the range has no extent.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// ContainsPoint returns true if p lies strictly between Start and End.
// Points on either boundary are outside.
func (r Range) ContainsPoint(p Point) bool {
	return r.Start.Before(p) && p.Before(r.End)
}
