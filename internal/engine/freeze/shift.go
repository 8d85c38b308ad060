package freeze

import "fmt"

// Action is the kind of row-count change reported by a document.
type Action uint8

const (
	ActionInsert Action = iota // rows were inserted
	ActionRemove               // rows were removed
)

// String returns the event name used by document change events.
func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// ParseAction converts an event name into an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "insert":
		return ActionInsert, nil
	case "remove":
		return ActionRemove, nil
	default:
		return 0, fmt.Errorf("unknown change action %q", s)
	}
}

// Shift moves stored ranges after a document change spanning
// [topRow, bottomRow].
//
// The change covers delta = |bottomRow - topRow| rows; a zero delta is an
// in-row edit and leaves the set alone. After a removal every range
// starting below bottomRow moves up by delta. After an insertion every range
// starting below topRow moves down by delta. Ranges at or above the pivot
// row are untouched.
//
// Shift reports whether any range moved. A shift can make ranges intersect,
// so callers normalize and refresh markers when it returns true.
func (s *Set) Shift(action Action, topRow, bottomRow int) bool {
	delta := bottomRow - topRow
	if delta < 0 {
		delta = -delta
	}
	if delta == 0 {
		return false
	}

	pivot := topRow
	if action == ActionRemove {
		pivot = bottomRow
		delta = -delta
	}

	moved := false
	for i, r := range s.ranges {
		if r.Start > pivot {
			s.ranges[i] = r.Offset(delta)
			moved = true
		}
	}
	return moved
}
