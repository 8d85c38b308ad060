// Package freeze provides frozen (read-only) row management for a document.
//
// A frozen range is a closed interval of zero-based rows that must reject
// structural edits. The package maintains a set of such ranges per page and
// keeps it consistent as the document's line count changes:
//
//   - [RowRange]: a closed row interval [Start, End]
//   - [Set]: the ranges owned by one page
//   - [Normalize]: merges ranges sharing at least one row
//   - [Set.Add] / [Set.Remove]: grow, split and trim the set
//   - [Set.Shift]: moves ranges after rows are inserted or removed
//
// # Intersection Policy
//
// Two ranges intersect when they share a row: [0,3] and [3,5] intersect,
// [0,2] and [3,5] do not. The same inclusive predicate is used by the
// normalizer, the guards and removal. Only [Set.Add] probes with a window
// inflated by one row on each side, so a range added next to an existing
// one extends it instead of creating a neighbour.
//
// # Usage
//
//	var s freeze.Set
//	s.Add(freeze.Row(5))
//	s.Add(freeze.RowRange{Start: 3, End: 4}) // s is now [3,5]
//
//	// three rows were inserted below row 1
//	if s.Shift(freeze.ActionInsert, 1, 4) {
//	    s.Normalize()
//	}
//
// # Thread Safety
//
// Set is not safe for concurrent use. The owner (a page) serializes access.
package freeze
