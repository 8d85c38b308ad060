// Package document provides the host text document that frozen-row
// management sits on.
//
// A Document stores text as lines and exposes the structural primitives an
// editing surface uses: Insert, Remove and MoveText, a single cursor with an
// anchor, and full-line markers used to decorate row ranges. Columns are
// measured in grapheme clusters.
//
// # Events
//
// Every structural change is reported to OnChange listeners as a
// [ChangeEvent] carrying the action and the affected start and end points.
// Cursor movement is reported to OnChangeCursor listeners as a cancelable
// [CursorEvent]; a listener that calls PreventDefault keeps the cursor where
// it was. Listeners run synchronously on the calling goroutine after the
// document lock is released, so a listener may call back into the document.
//
// # Usage
//
//	doc := document.New(document.WithContent("a\nb\nc"))
//	stop := doc.OnChange(func(ev document.ChangeEvent) {
//	    fmt.Println(ev.Action, ev.Start.Row, ev.End.Row)
//	})
//	defer stop()
//
//	doc.Insert(document.Point{Row: 1}, "x\ny\n") // insert 1 3
package document
