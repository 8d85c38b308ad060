package freeze

import "sort"

// Normalize returns a new slice in which every group of ranges sharing at
// least one row has been merged into a single range.
//
// Each surviving range repeatedly absorbs any other range it intersects
// until a full scan finds nothing left to merge; absorbed ranges are
// dropped. The result is sorted by Start, so permuting the input yields the
// same output. Normalize is idempotent, and nil or empty input gives nil.
// Ranges that only touch ([0,2] and [3,5]) stay separate.
func Normalize(ranges []RowRange) []RowRange {
	if len(ranges) == 0 {
		return nil
	}

	work := make([]RowRange, len(ranges))
	copy(work, ranges)
	consumed := make([]bool, len(work))

	for i := range work {
		if consumed[i] {
			continue
		}
		for merged := true; merged; {
			merged = false
			for j := range work {
				if j == i || consumed[j] {
					continue
				}
				if work[i].Intersects(work[j]) {
					work[i] = work[i].Union(work[j])
					consumed[j] = true
					merged = true
				}
			}
		}
	}

	out := make([]RowRange, 0, len(work))
	for i, r := range work {
		if !consumed[i] {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].Start < out[b].Start
	})
	return out
}

// IsNormalized reports whether no two ranges in the slice intersect.
func IsNormalized(ranges []RowRange) bool {
	for i := range ranges {
		for j := i + 1; j < len(ranges); j++ {
			if ranges[i].Intersects(ranges[j]) {
				return false
			}
		}
	}
	return true
}
