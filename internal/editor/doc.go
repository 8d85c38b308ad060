// Package editor manages the pages of a multi-page editor.
//
// An Editor keeps an ordered list of tabs, each holding a document and the
// page that guards its frozen rows. It enforces the configured page limits,
// tracks which tab is active together with the order tabs were activated
// in, and exposes the frozen row operations by page id.
package editor
