package freeze

import "strings"

// Set holds the frozen ranges of one page.
// The zero value is an empty set. Between normalizations the ranges may
// overlap; every mutating operation below re-normalizes before returning.
// Normalization only merges ranges that share a row, so touching ranges such
// as [3,4] and [5,6] stay separate after Remove or Shift. Only Add (and
// SetRanges) merges them.
type Set struct {
	ranges []RowRange
}

// NewSet creates a set from the given ranges and normalizes it.
func NewSet(ranges ...RowRange) *Set {
	s := &Set{}
	s.Add(ranges...)
	return s
}

// Ranges returns a copy of the ranges in the set.
func (s *Set) Ranges() []RowRange {
	if len(s.ranges) == 0 {
		return nil
	}
	out := make([]RowRange, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Len returns the number of ranges.
func (s *Set) Len() int {
	return len(s.ranges)
}

// IsEmpty returns true if no rows are frozen.
func (s *Set) IsEmpty() bool {
	return len(s.ranges) == 0
}

// At returns the range at index i.
func (s *Set) At(i int) RowRange {
	return s.ranges[i]
}

// Append adds r as a new entry without merging.
func (s *Set) Append(r RowRange) {
	s.ranges = append(s.ranges, r)
}

// Replace overwrites the bounds of the range at index i.
func (s *Set) Replace(i int, r RowRange) {
	s.ranges[i] = r
}

// RemoveAt deletes the range at index i.
func (s *Set) RemoveAt(i int) {
	s.ranges = append(s.ranges[:i], s.ranges[i+1:]...)
}

// Reset removes all ranges.
func (s *Set) Reset() {
	s.ranges = nil
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	return &Set{ranges: s.Ranges()}
}

// Find returns the index of the first range intersecting probe.
func (s *Set) Find(probe RowRange) (int, bool) {
	for i, r := range s.ranges {
		if r.Intersects(probe) {
			return i, true
		}
	}
	return -1, false
}

// Filter returns the indexes of every range intersecting probe.
func (s *Set) Filter(probe RowRange) []int {
	var idx []int
	for i, r := range s.ranges {
		if r.Intersects(probe) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Intersects returns true if any frozen row lies within probe.
func (s *Set) Intersects(probe RowRange) bool {
	_, ok := s.Find(probe)
	return ok
}

// IsFrozen returns true if row is frozen.
func (s *Set) IsFrozen(row int) bool {
	return s.Intersects(Row(row))
}

// Rows returns the total number of frozen rows.
func (s *Set) Rows() int {
	n := 0
	for _, r := range s.ranges {
		n += r.Len()
	}
	return n
}

// Normalize merges intersecting ranges in place.
func (s *Set) Normalize() {
	s.ranges = Normalize(s.ranges)
}

// String returns the ranges in "[a,b] [c,d]" form.
func (s *Set) String() string {
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

// Add freezes the given ranges.
//
// Each range is probed with a window one row wider on each side, so a range
// that touches an existing one extends it. If the first range hit by the probe
// already contains the new range nothing changes. Ranges that hit nothing are
// appended. The set is normalized afterwards.
func (s *Set) Add(ranges ...RowRange) {
	for _, r := range ranges {
		i, ok := s.Find(r.Inflate(1))
		if !ok {
			s.Append(r)
			continue
		}
		existing := s.ranges[i]
		if !existing.ContainsRange(r) {
			s.ranges[i] = existing.Union(r)
		}
	}
	s.Normalize()
}

// SetRanges replaces the whole set with the given ranges.
func (s *Set) SetRanges(ranges ...RowRange) {
	s.Reset()
	s.Add(ranges...)
}

// Remove unfreezes the given ranges.
//
// Every existing range intersecting a removal range is handled as follows:
//   - contained by the removal: deleted
//   - containing the removal: split into the rows before and after it,
//     keeping only non-empty pieces
//   - partial overlap: trimmed on the intersecting side, deleted if that
//     would invert it
//
// The set is normalized afterwards.
func (s *Set) Remove(ranges ...RowRange) {
	for _, rm := range ranges {
		kept := make([]RowRange, 0, len(s.ranges)+1)
		for _, existing := range s.ranges {
			if !existing.Intersects(rm) {
				kept = append(kept, existing)
				continue
			}
			kept = append(kept, subtract(existing, rm)...)
		}
		s.ranges = kept
	}
	s.Normalize()
}

// subtract returns what remains of existing after removing rm.
// The ranges are assumed to intersect.
func subtract(existing, rm RowRange) []RowRange {
	if existing.ContainsRange(rm) {
		var pieces []RowRange
		if before := (RowRange{Start: existing.Start, End: rm.Start - 1}); before.Start <= before.End {
			pieces = append(pieces, before)
		}
		if after := (RowRange{Start: rm.End + 1, End: existing.End}); after.Start <= after.End {
			pieces = append(pieces, after)
		}
		return pieces
	}
	if rm.ContainsRange(existing) {
		return nil
	}

	trimmed := existing
	if existing.Contains(rm.Start) {
		trimmed.End = rm.Start - 1
	}
	if existing.Contains(rm.End) {
		trimmed.Start = rm.End + 1
	}
	if trimmed.End < trimmed.Start {
		return nil
	}
	return []RowRange{trimmed}
}
