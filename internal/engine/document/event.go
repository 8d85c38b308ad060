package document

// Action identifies the kind of structural change.
type Action uint8

const (
	ActionInsert Action = iota
	ActionRemove
)

// String returns "insert" or "remove".
func (a Action) String() string {
	if a == ActionRemove {
		return "remove"
	}
	return "insert"
}

// ChangeEvent reports a structural change.
// For inserts End is the point after the inserted text; for removals Start
// and End bound the removed text. Lines holds the inserted or removed text
// split into lines.
type ChangeEvent struct {
	Action Action
	Start  Point
	End    Point
	Lines  []string
}

// Rows returns the number of rows added or removed by the change.
func (e ChangeEvent) Rows() int {
	return e.End.Row - e.Start.Row
}

// CursorEvent reports a cursor move. Listeners may cancel it.
type CursorEvent struct {
	// Previous is the cursor position before the move.
	Previous Point
	// Cursor is the requested position.
	Cursor Point
	// Anchor is the selection anchor after the move.
	Anchor Point

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault cancels the move; the cursor stays at Previous.
func (e *CursorEvent) PreventDefault() {
	e.defaultPrevented = true
}

// StopPropagation prevents later listeners from seeing the event.
func (e *CursorEvent) StopPropagation() {
	e.propagationStopped = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *CursorEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// PropagationStopped reports whether StopPropagation was called.
func (e *CursorEvent) PropagationStopped() bool {
	return e.propagationStopped
}

type changeListener struct {
	id int
	fn func(ChangeEvent)
}

type cursorListener struct {
	id int
	fn func(*CursorEvent)
}
