// Package page binds a frozen row set to a host document.
//
// A Page owns the frozen ranges of one document. It keeps them in step with
// the document by listening for change events (shifting, re-normalizing and
// re-installing markers after every structural change) and it routes edits
// through a Guard that rejects anything touching a frozen row:
//
//   - TryInsert and TryDelete fail with a *freeze.FrozenRowError
//   - TryMoveText returns the source range unchanged
//   - TryMoveCursor and cursor events landing on a frozen row are cancelled
//
// Marker handles are released before new ones are installed on every path
// that changes the set, and all of them are released by Close.
package page
