package page

import (
	"sync/atomic"

	"github.com/dshills/frostline/internal/engine/document"
	"github.com/dshills/frostline/internal/engine/freeze"
)

// Mutator is the editing surface a page exposes in place of the raw host
// primitives. Every structural edit goes through it.
type Mutator interface {
	TryInsert(pos document.Point, text string) (document.Point, error)
	TryDelete(rng document.Range) (document.Point, error)
	TryMoveText(from document.Range, to document.Point) (document.Range, error)
	TryMoveCursor(row, column int, keepDesiredColumn bool) bool
}

// Guard decorates a page's host, refusing edits that touch frozen rows.
// Inserts and deletes fail loudly with a *freeze.FrozenRowError; moves and
// cursor placement fail silently.
type Guard struct {
	page       *Page
	rejections atomic.Int64
}

var _ Mutator = (*Guard)(nil)

// frozenAt returns the first frozen range intersecting probe.
func (g *Guard) frozenAt(probe freeze.RowRange) (freeze.RowRange, bool) {
	p := g.page
	p.mu.Lock()
	defer p.mu.Unlock()
	if i, ok := p.frozen.Find(probe); ok {
		return p.frozen.At(i), true
	}
	return freeze.RowRange{}, false
}

// rowsOf returns the rows the host will actually touch for rng, which is
// clamped into the document the same way the host clamps it.
func (g *Guard) rowsOf(rng document.Range) freeze.RowRange {
	h := g.page.host
	return RowsOf(document.NewRange(h.ClampPoint(rng.Start), h.ClampPoint(rng.End)))
}

func (g *Guard) rowAt(pos document.Point) freeze.RowRange {
	return freeze.Row(g.page.host.ClampPoint(pos).Row)
}

// Rejected returns how many operations the guard has refused, including
// the silent move and cursor rejections.
func (g *Guard) Rejected() int64 {
	return g.rejections.Load()
}

func (g *Guard) reject(op string, probe, frozen freeze.RowRange) {
	g.rejections.Add(1)
	g.page.recorder.Rejected(op)
	g.page.logger.Debug("edit rejected", "op", op, "rows", probe.String(), "frozen", frozen.String())
}

// TryInsert inserts text at pos unless the row pos clamps to is frozen.
func (g *Guard) TryInsert(pos document.Point, text string) (document.Point, error) {
	if g.page.IsClosed() {
		return pos, ErrClosed
	}
	probe := g.rowAt(pos)
	if frozen, ok := g.frozenAt(probe); ok {
		g.reject("insert", probe, frozen)
		return pos, &freeze.FrozenRowError{Op: "insert", Probe: probe, Frozen: frozen}
	}
	return g.page.host.Insert(pos, text)
}

// TryDelete removes rng unless one of its rows is frozen. On rejection the
// selection is cleared as well.
func (g *Guard) TryDelete(rng document.Range) (document.Point, error) {
	if g.page.IsClosed() {
		return rng.Start, ErrClosed
	}
	probe := g.rowsOf(rng)
	if frozen, ok := g.frozenAt(probe); ok {
		g.page.host.ClearSelection()
		g.reject("remove", probe, frozen)
		return rng.Start, &freeze.FrozenRowError{Op: "remove", Probe: probe, Frozen: frozen}
	}
	return g.page.host.Remove(rng)
}

// TryMoveText moves the text in from to the point to. If the source rows or
// the destination row are frozen nothing happens and from is returned.
func (g *Guard) TryMoveText(from document.Range, to document.Point) (document.Range, error) {
	if g.page.IsClosed() {
		return from, ErrClosed
	}
	for _, probe := range []freeze.RowRange{g.rowsOf(from), g.rowAt(to)} {
		if frozen, ok := g.frozenAt(probe); ok {
			g.reject("move", probe, frozen)
			return from, nil
		}
	}
	return g.page.host.MoveText(from, to)
}

// TryMoveCursor moves the cursor unless the row it clamps to is frozen. It reports whether
// the cursor moved.
func (g *Guard) TryMoveCursor(row, column int, keepDesiredColumn bool) bool {
	if g.page.IsClosed() {
		return false
	}
	probe := g.rowAt(document.Point{Row: row, Column: column})
	if frozen, ok := g.frozenAt(probe); ok {
		g.reject("cursor", probe, frozen)
		return false
	}
	return g.page.host.MoveCursorTo(row, column, keepDesiredColumn)
}

// handleChangeCursor cancels cursor events whose anchor lands on a frozen row.
func (g *Guard) handleChangeCursor(ev *document.CursorEvent) {
	probe := freeze.Row(ev.Anchor.Row)
	frozen, ok := g.frozenAt(probe)
	if !ok {
		return
	}
	ev.PreventDefault()
	ev.StopPropagation()
	g.reject("cursor", probe, frozen)
}
