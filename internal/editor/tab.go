package editor

import (
	"sync"

	"github.com/dshills/frostline/internal/editor/modes"
	"github.com/dshills/frostline/internal/engine/document"
	"github.com/dshills/frostline/internal/engine/freeze"
	"github.com/dshills/frostline/internal/page"
)

// BasicPage describes a page to open.
type BasicPage struct {
	ID         string
	Title      string
	HoverTitle string
	Mode       string
	Value      string
	Active     bool
	Fixed      bool
	// Passive pages are opened programmatically: page limits are not
	// checked and the page is not activated unless Active is set.
	Passive bool
	Frozen  []freeze.RowRange
	Options map[string]any
}

// Tab is an open page together with its document and metadata.
// Fields are owned by the Editor; read them through the accessors, which
// take the editor's lock for the fields it can change.
type Tab struct {
	*page.Page

	mu           *sync.Mutex
	doc          *document.Document
	mode         modes.Mode
	title        string
	defaultTitle string
	hoverTitle   string
	typeIndex    int
	fixed        bool
	active       bool
	options      map[string]any
}

// Document returns the tab's document.
func (t *Tab) Document() *document.Document { return t.doc }

// Mode returns the tab's language mode.
func (t *Tab) Mode() modes.Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Title returns the display title.
func (t *Tab) Title() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.title
}

// DefaultTitle returns the generated title used when none is set.
func (t *Tab) DefaultTitle() string { return t.defaultTitle }

// HoverTitle returns the tooltip title.
func (t *Tab) HoverTitle() string { return t.hoverTitle }

// TypeIndex returns how many pages of the same mode were open when this one
// was created.
func (t *Tab) TypeIndex() int { return t.typeIndex }

// Fixed reports whether the tab refuses user-initiated closes.
func (t *Tab) Fixed() bool { return t.fixed }

// Active reports whether the tab is the active one.
func (t *Tab) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Option returns a per-page option.
func (t *Tab) Option(key string) (any, bool) {
	v, ok := t.options[key]
	return v, ok
}
