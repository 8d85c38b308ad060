package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordChanges(d *Document) *[]ChangeEvent {
	var events []ChangeEvent
	d.OnChange(func(ev ChangeEvent) {
		events = append(events, ev)
	})
	return &events
}

func TestNew(t *testing.T) {
	d := New()
	assert.Equal(t, 1, d.LineCount())
	assert.Equal(t, "", d.Text())

	d = New(WithContent("a\r\nb\rc"))
	assert.Equal(t, 3, d.LineCount())
	assert.Equal(t, "a\nb\nc", d.Text())
	assert.Equal(t, "b", d.Line(1))
	assert.Equal(t, "", d.Line(9))
}

func TestInsert(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		d := New(WithContent("hello world"))
		events := recordChanges(d)

		end, err := d.Insert(Point{Row: 0, Column: 5}, ",")
		require.NoError(t, err)
		assert.Equal(t, Point{Row: 0, Column: 6}, end)
		assert.Equal(t, "hello, world", d.Text())

		require.Len(t, *events, 1)
		ev := (*events)[0]
		assert.Equal(t, ActionInsert, ev.Action)
		assert.Equal(t, 0, ev.Rows())
	})

	t.Run("multi line", func(t *testing.T) {
		d := New(WithContent("a\nb\nc"))
		events := recordChanges(d)

		end, err := d.Insert(Point{Row: 1, Column: 0}, "x\ny\n")
		require.NoError(t, err)
		assert.Equal(t, Point{Row: 3, Column: 0}, end)
		assert.Equal(t, "a\nx\ny\nb\nc", d.Text())

		require.Len(t, *events, 1)
		assert.Equal(t, 1, (*events)[0].Start.Row)
		assert.Equal(t, 3, (*events)[0].End.Row)
		assert.Equal(t, []string{"x", "y", ""}, (*events)[0].Lines)
	})

	t.Run("clamps position", func(t *testing.T) {
		d := New(WithContent("ab\ncd"))
		_, err := d.Insert(Point{Row: 10, Column: 10}, "!")
		require.NoError(t, err)
		assert.Equal(t, "ab\ncd!", d.Text())
	})

	t.Run("empty text emits nothing", func(t *testing.T) {
		d := New(WithContent("ab"))
		events := recordChanges(d)
		_, err := d.Insert(Point{}, "")
		require.NoError(t, err)
		assert.Empty(t, *events)
	})

	t.Run("grapheme columns", func(t *testing.T) {
		d := New(WithContent("héllo"))
		_, err := d.Insert(Point{Row: 0, Column: 2}, "-")
		require.NoError(t, err)
		assert.Equal(t, "hé-llo", d.Text())
		assert.Equal(t, 6, d.LineLen(0))
	})
}

func TestRemove(t *testing.T) {
	d := New(WithContent("one\ntwo\nthree\nfour"))
	events := recordChanges(d)

	start, err := d.Remove(NewRange(Point{Row: 2, Column: 2}, Point{Row: 0, Column: 1}))
	require.NoError(t, err)
	assert.Equal(t, Point{Row: 0, Column: 1}, start)
	assert.Equal(t, "oree\nfour", d.Text())

	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, ActionRemove, ev.Action)
	assert.Equal(t, 0, ev.Start.Row)
	assert.Equal(t, 2, ev.End.Row)
	assert.Equal(t, []string{"ne", "two", "th"}, ev.Lines)

	_, err = d.Remove(Range{Start: Point{Row: 1}, End: Point{Row: 1}})
	require.NoError(t, err)
	assert.Len(t, *events, 1, "empty range is not a change")
}

func TestTextRange(t *testing.T) {
	d := New(WithContent("one\ntwo\nthree"))
	assert.Equal(t, "ne\ntw", d.TextRange(NewRange(Point{Row: 0, Column: 1}, Point{Row: 1, Column: 2})))
	assert.Equal(t, "hr", d.TextRange(NewRange(Point{Row: 2, Column: 1}, Point{Row: 2, Column: 3})))
}

func TestMoveText(t *testing.T) {
	t.Run("move line down", func(t *testing.T) {
		d := New(WithContent("a\nb\nc\nd"))
		events := recordChanges(d)

		got, err := d.MoveText(RowRange(0, 1), Point{Row: 3})
		require.NoError(t, err)
		assert.Equal(t, "b\nc\na\nd", d.Text())
		assert.Equal(t, Range{Start: Point{Row: 2}, End: Point{Row: 3}}, got)

		require.Len(t, *events, 2)
		assert.Equal(t, ActionRemove, (*events)[0].Action)
		assert.Equal(t, ActionInsert, (*events)[1].Action)
	})

	t.Run("move line up", func(t *testing.T) {
		d := New(WithContent("a\nb\nc\nd"))
		got, err := d.MoveText(RowRange(2, 3), Point{Row: 0})
		require.NoError(t, err)
		assert.Equal(t, "c\na\nb\nd", d.Text())
		assert.Equal(t, Range{Start: Point{Row: 0}, End: Point{Row: 1}}, got)
	})

	t.Run("same line after source", func(t *testing.T) {
		d := New(WithContent("abcdef"))
		got, err := d.MoveText(NewRange(Point{Column: 0}, Point{Column: 2}), Point{Column: 4})
		require.NoError(t, err)
		assert.Equal(t, "cdabef", d.Text())
		assert.Equal(t, NewRange(Point{Column: 2}, Point{Column: 4}), got)
	})

	t.Run("destination inside source", func(t *testing.T) {
		d := New(WithContent("abcdef"))
		from := NewRange(Point{Column: 1}, Point{Column: 4})
		got, err := d.MoveText(from, Point{Column: 2})
		require.NoError(t, err)
		assert.Equal(t, from, got)
		assert.Equal(t, "abcdef", d.Text())
	})
}

func TestSetText(t *testing.T) {
	d := New(WithContent("a\nb"))
	events := recordChanges(d)

	require.NoError(t, d.SetText("x\ny\nz"))
	assert.Equal(t, "x\ny\nz", d.Text())
	require.Len(t, *events, 2)
	assert.Equal(t, ActionRemove, (*events)[0].Action)
	assert.Equal(t, 2, (*events)[1].Rows())
}

func TestMoveCursorTo(t *testing.T) {
	t.Run("moves and collapses selection", func(t *testing.T) {
		d := New(WithContent("one\ntwo\nthree"))
		d.SetSelection(Point{Row: 0}, Point{Row: 1, Column: 2})
		assert.True(t, d.HasSelection())

		assert.True(t, d.MoveCursorTo(2, 3, false))
		assert.Equal(t, Point{Row: 2, Column: 3}, d.Cursor())
		assert.False(t, d.HasSelection())
		assert.Equal(t, 3, d.DesiredColumn())
	})

	t.Run("keep desired column", func(t *testing.T) {
		d := New(WithContent("one\ntwo"))
		d.MoveCursorTo(0, 2, false)
		d.MoveCursorTo(1, 0, true)
		assert.Equal(t, 2, d.DesiredColumn())
	})

	t.Run("prevented move restores cursor", func(t *testing.T) {
		d := New(WithContent("one\ntwo\nthree"))
		d.MoveCursorTo(0, 1, false)

		var later int
		d.OnChangeCursor(func(ev *CursorEvent) {
			if ev.Cursor.Row == 2 {
				ev.PreventDefault()
				ev.StopPropagation()
			}
		})
		d.OnChangeCursor(func(*CursorEvent) { later++ })

		assert.False(t, d.MoveCursorTo(2, 0, false))
		assert.Equal(t, Point{Row: 0, Column: 1}, d.Cursor())
		assert.Equal(t, 0, later)

		assert.True(t, d.MoveCursorTo(1, 0, false))
		assert.Equal(t, 1, later)
	})
}

func TestListenersUnsubscribe(t *testing.T) {
	d := New()
	calls := 0
	stop := d.OnChange(func(ChangeEvent) { calls++ })

	_, _ = d.Insert(Point{}, "a")
	stop()
	_, _ = d.Insert(Point{}, "b")
	assert.Equal(t, 1, calls)
}

func TestListenerMayReenter(t *testing.T) {
	d := New(WithContent("a\nb"))
	d.OnChange(func(ev ChangeEvent) {
		d.AddMarker(RowRange(ev.Start.Row, ev.End.Row), "changed", MarkerFullLine, false)
	})

	_, err := d.Insert(Point{Row: 1}, "x\n")
	require.NoError(t, err)
	assert.Len(t, d.Markers(), 1)
}

func TestMarkers(t *testing.T) {
	d := New(WithContent("a\nb\nc"))

	id1 := d.AddMarker(RowRange(0, 1), "frozen", MarkerFullLine, false)
	id2 := d.AddMarker(RowRange(2, 2), "frozen", MarkerFullLine, true)
	assert.NotEqual(t, id1, id2)

	markers := d.Markers()
	require.Len(t, markers, 2)
	assert.Equal(t, id1, markers[0].ID)
	assert.Equal(t, MarkerFullLine, markers[0].Type)

	m, err := d.Marker(id2)
	require.NoError(t, err)
	assert.True(t, m.InFront)

	assert.True(t, d.RemoveMarker(id1))
	assert.False(t, d.RemoveMarker(id1))
	_, err = d.Marker(id1)
	assert.ErrorIs(t, err, ErrMarkerNotFound)
}

func TestClose(t *testing.T) {
	d := New(WithContent("a"))
	d.AddMarker(RowRange(0, 0), "x", MarkerFullLine, false)
	d.Close()

	assert.True(t, d.IsClosed())
	assert.Empty(t, d.Markers())

	_, err := d.Insert(Point{}, "b")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = d.Remove(RowRange(0, 0))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, d.SetText("x"), ErrClosed)
	assert.False(t, d.MoveCursorTo(0, 0, false))
}
