package document

// Cursor returns the cursor position.
func (d *Document) Cursor() Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

// Anchor returns the selection anchor. It equals the cursor when nothing is
// selected.
func (d *Document) Anchor() Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.anchor
}

// Selection returns the selected range (Start <= End).
func (d *Document) Selection() Range {
	d.mu.Lock()
	defer d.mu.Unlock()
	return NewRange(d.anchor, d.cursor)
}

// HasSelection returns true if the selection has extent.
func (d *Document) HasSelection() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.anchor != d.cursor
}

// DesiredColumn returns the column vertical moves try to keep.
func (d *Document) DesiredColumn() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.desiredColumn
}

// SetSelection selects from anchor to cursor. Both points are clamped.
func (d *Document) SetSelection(anchor, cursor Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.anchor = d.clampLocked(anchor)
	d.cursor = d.clampLocked(cursor)
	d.desiredColumn = d.cursor.Column
}

// ClearSelection collapses the selection onto the cursor.
func (d *Document) ClearSelection() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.anchor = d.cursor
}

// MoveCursorTo moves the cursor to (row, column) and collapses the selection.
//
// OnChangeCursor listeners see the move before it becomes final; if any of
// them calls PreventDefault the cursor and anchor are restored and
// MoveCursorTo returns false. When keepDesiredColumn is false the desired
// column is reset to the new column.
func (d *Document) MoveCursorTo(row, column int, keepDesiredColumn bool) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	prevCursor, prevAnchor, prevDesired := d.cursor, d.anchor, d.desiredColumn

	next := d.clampLocked(Point{Row: row, Column: column})
	d.cursor, d.anchor = next, next
	if !keepDesiredColumn {
		d.desiredColumn = next.Column
	}
	listeners := d.cursorListeners
	d.mu.Unlock()

	ev := &CursorEvent{Previous: prevCursor, Cursor: next, Anchor: next}
	for _, l := range listeners {
		l.fn(ev)
		if ev.propagationStopped {
			break
		}
	}
	if !ev.defaultPrevented {
		return true
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cursor == next && d.anchor == next {
		d.cursor, d.anchor, d.desiredColumn = prevCursor, prevAnchor, prevDesired
	}
	return false
}
