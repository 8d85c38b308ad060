package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/frostline/internal/engine/document"
	"github.com/dshills/frostline/internal/engine/freeze"
	"github.com/dshills/frostline/internal/page"
)

// Document is the read side of a page's document.
type Document interface {
	Text() string
	LineCount() int
	Line(row int) string
}

// PageModule implements the fl API module over one page.
type PageModule struct {
	page     *page.Page
	doc      Document
	rejected int
}

// NewPageModule creates the fl module for p, reading text from doc.
func NewPageModule(p *page.Page, doc Document) *PageModule {
	return &PageModule{page: p, doc: doc}
}

// Name returns the module name.
func (m *PageModule) Name() string {
	return "fl"
}

// Rejected returns how many edits the frozen rows refused. Refused moves
// count even though they raise no Lua error.
func (m *PageModule) Rejected() int {
	return m.rejected
}

// Register builds the module table.
func (m *PageModule) Register(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"insert":     m.insert,
		"remove":     m.remove,
		"move":       m.move,
		"cursor":     m.cursor,
		"freeze":     m.freeze,
		"unfreeze":   m.unfreeze,
		"set_frozen": m.setFrozen,
		"clear":      m.clear,
		"frozen":     m.frozen,
		"is_frozen":  m.isFrozen,
		"text":       m.text,
		"line":       m.line,
		"line_count": m.lineCount,
	})
}

// raise turns err into a Lua error, counting frozen row rejections.
func (m *PageModule) raise(L *lua.LState, err error) int {
	if freeze.IsFrozenRow(err) {
		m.rejected++
	}
	L.RaiseError("%s", err.Error())
	return 0
}

func checkPoint(L *lua.LState, n int) document.Point {
	return document.Point{Row: L.CheckInt(n), Column: L.CheckInt(n + 1)}
}

func checkRows(L *lua.LState, n int) freeze.RowRange {
	return freeze.RowRange{Start: L.CheckInt(n), End: L.CheckInt(n + 1)}
}

func pushPoint(L *lua.LState, p document.Point) int {
	L.Push(lua.LNumber(p.Row))
	L.Push(lua.LNumber(p.Column))
	return 2
}

// insert(row, col, text) -> end_row, end_col
func (m *PageModule) insert(L *lua.LState) int {
	pos := checkPoint(L, 1)
	text := L.CheckString(3)

	end, err := m.page.Guard().TryInsert(pos, text)
	if err != nil {
		return m.raise(L, err)
	}
	return pushPoint(L, end)
}

// remove(start_row, start_col, end_row, end_col) -> row, col
func (m *PageModule) remove(L *lua.LState) int {
	rng := document.NewRange(checkPoint(L, 1), checkPoint(L, 3))

	pos, err := m.page.Guard().TryDelete(rng)
	if err != nil {
		return m.raise(L, err)
	}
	return pushPoint(L, pos)
}

// move(start_row, start_col, end_row, end_col, row, col) -> range of the moved text
//
// Moves touching frozen rows leave the document alone, return the source
// range and count as rejected.
func (m *PageModule) move(L *lua.LState) int {
	from := document.NewRange(checkPoint(L, 1), checkPoint(L, 3))
	to := checkPoint(L, 5)

	guard := m.page.Guard()
	before := guard.Rejected()
	rng, err := guard.TryMoveText(from, to)
	if err != nil {
		return m.raise(L, err)
	}
	if guard.Rejected() > before {
		m.rejected++
	}
	pushPoint(L, rng.Start)
	return pushPoint(L, rng.End) + 2
}

// cursor(row, col) -> moved
func (m *PageModule) cursor(L *lua.LState) int {
	moved := m.page.Guard().TryMoveCursor(L.CheckInt(1), L.CheckInt(2), false)
	L.Push(lua.LBool(moved))
	return 1
}

// freeze(start, end)
func (m *PageModule) freeze(L *lua.LState) int {
	if err := m.page.AddFrozen(checkRows(L, 1)); err != nil {
		return m.raise(L, err)
	}
	return 0
}

// unfreeze(start, end)
func (m *PageModule) unfreeze(L *lua.LState) int {
	if err := m.page.RemoveFrozen(checkRows(L, 1)); err != nil {
		return m.raise(L, err)
	}
	return 0
}

// set_frozen({{start, end}, ...})
func (m *PageModule) setFrozen(L *lua.LState) int {
	tbl := L.CheckTable(1)

	var ranges []freeze.RowRange
	var bad bool
	tbl.ForEach(func(_, v lua.LValue) {
		pair, ok := v.(*lua.LTable)
		if !ok {
			bad = true
			return
		}
		start, ok1 := pair.RawGetInt(1).(lua.LNumber)
		end, ok2 := pair.RawGetInt(2).(lua.LNumber)
		if !ok1 || !ok2 {
			bad = true
			return
		}
		ranges = append(ranges, freeze.RowRange{Start: int(start), End: int(end)})
	})
	if bad {
		L.ArgError(1, "expected a list of {start, end} pairs")
		return 0
	}

	if err := m.page.SetFrozen(ranges...); err != nil {
		return m.raise(L, err)
	}
	return 0
}

// clear()
func (m *PageModule) clear(L *lua.LState) int {
	if err := m.page.ClearFrozen(); err != nil {
		return m.raise(L, err)
	}
	return 0
}

// frozen() -> {{start, end}, ...}
func (m *PageModule) frozen(L *lua.LState) int {
	out := L.NewTable()
	for _, r := range m.page.Frozen() {
		pair := L.NewTable()
		pair.Append(lua.LNumber(r.Start))
		pair.Append(lua.LNumber(r.End))
		out.Append(pair)
	}
	L.Push(out)
	return 1
}

// is_frozen(row) -> bool
func (m *PageModule) isFrozen(L *lua.LState) int {
	L.Push(lua.LBool(m.page.IsFrozen(L.CheckInt(1))))
	return 1
}

// text() -> string
func (m *PageModule) text(L *lua.LState) int {
	L.Push(lua.LString(m.doc.Text()))
	return 1
}

// line(row) -> string
func (m *PageModule) line(L *lua.LState) int {
	row := L.CheckInt(1)
	if row < 0 || row >= m.doc.LineCount() {
		L.ArgError(1, "row out of range")
		return 0
	}
	L.Push(lua.LString(m.doc.Line(row)))
	return 1
}

// line_count() -> number
func (m *PageModule) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.doc.LineCount()))
	return 1
}
