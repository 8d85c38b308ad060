package document

import (
	"strings"
	"sync"
)

// Document is a line-based text document with a cursor, markers and change
// notifications. All methods are safe for concurrent use; listeners are
// invoked without the lock held.
type Document struct {
	mu sync.Mutex

	lines []string

	// Selection
	cursor        Point
	anchor        Point
	desiredColumn int

	// Markers
	markers    map[MarkerID]Marker
	nextMarker MarkerID

	// Listeners
	changeListeners []changeListener
	cursorListeners []cursorListener
	nextListener    int

	closed bool
}

// New creates a document. Without WithContent it holds one empty line.
func New(opts ...Option) *Document {
	d := &Document{
		lines:   []string{""},
		markers: make(map[MarkerID]Marker),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// splitLines normalizes line endings to \n and splits text into lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full document content joined with \n.
func (d *Document) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return strings.Join(d.lines, "\n")
}

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.lines)
}

// Line returns the text of a line, or "" if row is out of range.
func (d *Document) Line(row int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if row < 0 || row >= len(d.lines) {
		return ""
	}
	return d.lines[row]
}

// LineLen returns the grapheme length of a line.
func (d *Document) LineLen(row int) int {
	return graphemeLen(d.Line(row))
}

// TextRange returns the text covered by rng.
func (d *Document) TextRange(rng Range) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	rng = d.clampRangeLocked(rng)
	return strings.Join(d.rangeLinesLocked(rng), "\n")
}

// ClampPoint moves p into document bounds.
func (d *Document) ClampPoint(p Point) Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clampLocked(p)
}

func (d *Document) clampLocked(p Point) Point {
	if p.Row < 0 {
		return Point{}
	}
	if p.Row >= len(d.lines) {
		last := len(d.lines) - 1
		return Point{Row: last, Column: graphemeLen(d.lines[last])}
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if n := graphemeLen(d.lines[p.Row]); p.Column > n {
		p.Column = n
	}
	return p
}

func (d *Document) clampRangeLocked(rng Range) Range {
	return NewRange(d.clampLocked(rng.Start), d.clampLocked(rng.End))
}

// rangeLinesLocked returns the text of rng split into lines.
func (d *Document) rangeLinesLocked(rng Range) []string {
	first := d.lines[rng.Start.Row]
	so := byteOffset(first, rng.Start.Column)
	if rng.Start.Row == rng.End.Row {
		eo := byteOffset(first, rng.End.Column)
		return []string{first[so:eo]}
	}

	out := make([]string, 0, rng.End.Row-rng.Start.Row+1)
	out = append(out, first[so:])
	out = append(out, d.lines[rng.Start.Row+1:rng.End.Row]...)
	last := d.lines[rng.End.Row]
	out = append(out, last[:byteOffset(last, rng.End.Column)])
	return out
}

// ============================================================================
// Write Operations
// ============================================================================

// Insert inserts text at pos and returns the point after the inserted text.
// The position is clamped into the document first.
func (d *Document) Insert(pos Point, text string) (Point, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return Point{}, ErrClosed
	}
	ev, ok := d.insertLocked(pos, text)
	d.mu.Unlock()

	if ok {
		d.emitChange(ev)
	}
	return ev.End, nil
}

func (d *Document) insertLocked(pos Point, text string) (ChangeEvent, bool) {
	pos = d.clampLocked(pos)
	if text == "" {
		return ChangeEvent{Action: ActionInsert, Start: pos, End: pos}, false
	}

	newLines := splitLines(text)
	line := d.lines[pos.Row]
	off := byteOffset(line, pos.Column)
	head, tail := line[:off], line[off:]

	var end Point
	if len(newLines) == 1 {
		d.lines[pos.Row] = head + text + tail
		end = Point{Row: pos.Row, Column: pos.Column + graphemeLen(text)}
	} else {
		last := newLines[len(newLines)-1]
		inserted := make([]string, 0, len(newLines))
		inserted = append(inserted, head+newLines[0])
		inserted = append(inserted, newLines[1:len(newLines)-1]...)
		inserted = append(inserted, last+tail)

		lines := make([]string, 0, len(d.lines)+len(newLines)-1)
		lines = append(lines, d.lines[:pos.Row]...)
		lines = append(lines, inserted...)
		lines = append(lines, d.lines[pos.Row+1:]...)
		d.lines = lines
		end = Point{Row: pos.Row + len(newLines) - 1, Column: graphemeLen(last)}
	}

	return ChangeEvent{Action: ActionInsert, Start: pos, End: end, Lines: newLines}, true
}

// Remove deletes the text in rng and returns the start of the removed range.
func (d *Document) Remove(rng Range) (Point, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return Point{}, ErrClosed
	}
	ev, ok := d.removeLocked(rng)
	d.mu.Unlock()

	if ok {
		d.emitChange(ev)
	}
	return ev.Start, nil
}

func (d *Document) removeLocked(rng Range) (ChangeEvent, bool) {
	rng = d.clampRangeLocked(rng)
	if rng.IsEmpty() {
		return ChangeEvent{Action: ActionRemove, Start: rng.Start, End: rng.Start}, false
	}

	removed := d.rangeLinesLocked(rng)
	first := d.lines[rng.Start.Row]
	last := d.lines[rng.End.Row]
	joined := first[:byteOffset(first, rng.Start.Column)] + last[byteOffset(last, rng.End.Column):]

	lines := make([]string, 0, len(d.lines)-(rng.End.Row-rng.Start.Row))
	lines = append(lines, d.lines[:rng.Start.Row]...)
	lines = append(lines, joined)
	lines = append(lines, d.lines[rng.End.Row+1:]...)
	d.lines = lines

	d.cursor = d.clampLocked(d.cursor)
	d.anchor = d.clampLocked(d.anchor)

	return ChangeEvent{Action: ActionRemove, Start: rng.Start, End: rng.End, Lines: removed}, true
}

// MoveText moves the text in from to the point to and returns the range the
// text occupies afterwards. A destination strictly inside the source leaves
// the document unchanged and returns from.
func (d *Document) MoveText(from Range, to Point) (Range, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return from, ErrClosed
	}

	from = d.clampRangeLocked(from)
	to = d.clampLocked(to)
	if from.IsEmpty() || from.ContainsPoint(to) {
		d.mu.Unlock()
		return from, nil
	}

	text := strings.Join(d.rangeLinesLocked(from), "\n")
	removed, _ := d.removeLocked(from)

	// The removal shifts every point at or after the end of the source.
	if !to.Before(from.End) {
		if to.Row == from.End.Row {
			to.Column = from.Start.Column + to.Column - from.End.Column
		}
		to.Row -= from.End.Row - from.Start.Row
	}

	inserted, _ := d.insertLocked(to, text)
	d.mu.Unlock()

	d.emitChange(removed)
	d.emitChange(inserted)
	return Range{Start: inserted.Start, End: inserted.End}, nil
}

// SetText replaces the whole document content.
func (d *Document) SetText(text string) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	last := len(d.lines) - 1
	removed, hadText := d.removeLocked(Range{End: Point{Row: last, Column: graphemeLen(d.lines[last])}})
	inserted, hasText := d.insertLocked(Point{}, text)
	d.cursor, d.anchor = Point{}, Point{}
	d.mu.Unlock()

	if hadText {
		d.emitChange(removed)
	}
	if hasText {
		d.emitChange(inserted)
	}
	return nil
}

// Close detaches all listeners and markers. Further edits return ErrClosed.
func (d *Document) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.changeListeners = nil
	d.cursorListeners = nil
	d.markers = make(map[MarkerID]Marker)
}

// IsClosed reports whether Close was called.
func (d *Document) IsClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// ============================================================================
// Listeners
// ============================================================================

// OnChange registers fn for structural changes and returns a function that
// unregisters it.
func (d *Document) OnChange(fn func(ChangeEvent)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextListener++
	id := d.nextListener
	d.changeListeners = append(d.changeListeners, changeListener{id: id, fn: fn})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, l := range d.changeListeners {
			if l.id == id {
				d.changeListeners = append(d.changeListeners[:i:i], d.changeListeners[i+1:]...)
				return
			}
		}
	}
}

// OnChangeCursor registers fn for cursor moves and returns a function that
// unregisters it.
func (d *Document) OnChangeCursor(fn func(*CursorEvent)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextListener++
	id := d.nextListener
	d.cursorListeners = append(d.cursorListeners, cursorListener{id: id, fn: fn})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, l := range d.cursorListeners {
			if l.id == id {
				d.cursorListeners = append(d.cursorListeners[:i:i], d.cursorListeners[i+1:]...)
				return
			}
		}
	}
}

func (d *Document) emitChange(ev ChangeEvent) {
	d.mu.Lock()
	listeners := d.changeListeners
	d.mu.Unlock()

	for _, l := range listeners {
		l.fn(ev)
	}
}
