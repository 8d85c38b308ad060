package page

import "github.com/dshills/frostline/internal/engine/document"

// Host is the document engine a page guards and decorates.
// *document.Document implements it.
type Host interface {
	Insert(pos document.Point, text string) (document.Point, error)
	Remove(rng document.Range) (document.Point, error)
	MoveText(from document.Range, to document.Point) (document.Range, error)
	MoveCursorTo(row, column int, keepDesiredColumn bool) bool
	ClearSelection()
	ClampPoint(p document.Point) document.Point

	AddMarker(rng document.Range, class string, typ document.MarkerType, inFront bool) document.MarkerID
	RemoveMarker(id document.MarkerID) bool

	OnChange(fn func(document.ChangeEvent)) func()
	OnChangeCursor(fn func(*document.CursorEvent)) func()
}

// Recorder receives guard and shift outcomes. Implementations must be safe
// for concurrent use.
type Recorder interface {
	// Rejected counts an edit refused because it touched a frozen row.
	Rejected(op string)
	// Shifted counts a change event that moved frozen ranges.
	Shifted(action string)
	// MarkersRefreshed records how many markers were installed.
	MarkersRefreshed(count int)
}

type nopRecorder struct{}

func (nopRecorder) Rejected(string)      {}
func (nopRecorder) Shifted(string)       {}
func (nopRecorder) MarkersRefreshed(int) {}

// NopRecorder returns a Recorder that discards everything.
func NopRecorder() Recorder {
	return nopRecorder{}
}
