package editor

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dshills/frostline/internal/editor/modes"
	"github.com/dshills/frostline/internal/engine/document"
	"github.com/dshills/frostline/internal/engine/freeze"
	"github.com/dshills/frostline/internal/page"
)

// defaultName is the base of generated titles.
const defaultName = "default"

// Editor manages the open pages.
type Editor struct {
	mu sync.Mutex

	cfg     Config
	tabs    []*Tab
	history []*Tab
	theme   modes.Theme

	logger   *slog.Logger
	recorder page.Recorder
}

// New creates an editor. An unknown configured theme is ignored.
func New(cfg Config, opts ...Option) *Editor {
	e := &Editor{
		cfg:      cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: page.NopRecorder(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if th, ok := e.lookupTheme(cfg.Theme); ok {
		e.theme = th
	}
	return e
}

// ============================================================================
// Pages
// ============================================================================

// SetPage opens a page.
func (e *Editor) SetPage(bp BasicPage) (*Tab, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !bp.Passive {
		if err := ValidPageLimit(len(e.tabs), e.cfg.PageLimit, 1); err != nil {
			return nil, err
		}
	}
	if bp.ID != "" && e.findLocked(bp.ID) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePage, bp.ID)
	}
	if bp.Mode == "" {
		bp.Mode = e.cfg.DefaultMode
	}
	if bp.Mode == "" {
		bp.Mode = modes.DefaultMode
	}
	mode, ok := e.lookupMode(bp.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, bp.Mode)
	}

	doc := document.New(document.WithContent(bp.Value))
	p, err := page.New(doc,
		page.WithID(bp.ID),
		page.WithFrozen(bp.Frozen...),
		page.WithMarker(e.cfg.MarkerClass, e.cfg.MarkerType),
		page.WithLogger(e.logger),
		page.WithRecorder(e.recorder),
	)
	if err != nil {
		doc.Close()
		return nil, err
	}

	typeIndex := e.typeIndexLocked(mode.ID)
	defaultTitle := modes.DefaultTitle(typeIndex, mode, defaultName)
	tab := &Tab{
		Page:         p,
		mu:           &e.mu,
		doc:          doc,
		mode:         mode,
		defaultTitle: defaultTitle,
		title:        modes.FormatTitle(bp.Title, defaultTitle, mode, true),
		hoverTitle:   bp.HoverTitle,
		typeIndex:    typeIndex,
		fixed:        bp.Fixed,
		options:      bp.Options,
	}
	e.tabs = append(e.tabs, tab)

	switch {
	case bp.Active:
		e.activateLocked(tab)
	case !bp.Passive, e.activeLocked() == nil:
		e.autoChangeLocked(1)
	}

	e.logger.Info("page opened", "page", tab.ID(), "mode", mode.ID, "title", tab.title)
	return tab, nil
}

// ClosePage closes the page with the given id.
//
// Non-passive closes refuse fixed pages and closes that would break the
// lower page limit. Closing the active page activates the previously
// active one.
func (e *Editor) ClosePage(id string, passive bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.findLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	tab := e.tabs[i]
	if !passive {
		if tab.fixed {
			return fmt.Errorf("%w: %s", ErrPageFixed, id)
		}
		if err := ValidPageLimit(len(e.tabs), e.cfg.PageLimit, -1); err != nil {
			return err
		}
	}

	tab.Close()
	e.tabs = append(e.tabs[:i:i], e.tabs[i+1:]...)

	e.forgetLocked(tab)
	if tab.active {
		tab.active = false
		e.autoChangeLocked(-1)
	}

	e.logger.Info("page closed", "page", id)
	return nil
}

// CloseAll closes every page regardless of limits.
func (e *Editor) CloseAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, tab := range e.tabs {
		tab.Close()
	}
	e.tabs = nil
	e.history = nil
}

// Pages returns the open tabs in order.
func (e *Editor) Pages() []*Tab {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Tab, len(e.tabs))
	copy(out, e.tabs)
	return out
}

// PageByID returns the tab with the given id.
func (e *Editor) PageByID(id string) (*Tab, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.findLocked(id); i >= 0 {
		return e.tabs[i], true
	}
	return nil, false
}

// PageIndex returns the position of the tab with the given id, or -1.
func (e *Editor) PageIndex(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.findLocked(id)
}

// PageTypeIndex returns the number of open pages in the given mode.
func (e *Editor) PageTypeIndex(mode string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.typeIndexLocked(mode)
}

// CanAddPage reports whether one more page fits the limits.
func (e *Editor) CanAddPage() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ValidPageLimit(len(e.tabs), e.cfg.PageLimit, 1) == nil
}

// CanClosePage reports whether one page can be closed within the limits.
func (e *Editor) CanClosePage() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ValidPageLimit(len(e.tabs), e.cfg.PageLimit, -1) == nil
}

// RenamePage sets a user-typed title, appending the mode suffix as needed.
func (e *Editor) RenamePage(id, title string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.findLocked(id)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	tab := e.tabs[i]
	tab.title = modes.FormatTitle(title, tab.defaultTitle, tab.mode, false)
	return tab.title, nil
}

func (e *Editor) findLocked(id string) int {
	for i, tab := range e.tabs {
		if tab.ID() == id {
			return i
		}
	}
	return -1
}

func (e *Editor) typeIndexLocked(mode string) int {
	n := 0
	for _, tab := range e.tabs {
		if tab.mode.ID == mode {
			n++
		}
	}
	return n
}

// ============================================================================
// Active page
// ============================================================================

// ActivePage returns the active tab, or nil.
func (e *Editor) ActivePage() *Tab {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeLocked()
}

// Activate makes the tab with the given id active.
func (e *Editor) Activate(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.findLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	e.activateLocked(e.tabs[i])
	return nil
}

// AutoChangePageActive picks a new active page.
// A positive direction activates the newest page, a negative one goes back
// to the previously active page, and zero keeps the current active page
// (falling back to the newest). It reports whether a page was activated.
func (e *Editor) AutoChangePageActive(direction int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.autoChangeLocked(direction)
}

func (e *Editor) autoChangeLocked(direction int) bool {
	var current *Tab
	switch {
	case direction == 0:
		current = e.activeLocked()
		if current == nil && len(e.tabs) > 0 {
			current = e.tabs[len(e.tabs)-1]
		}
	case direction > 0:
		if len(e.tabs) > 0 {
			current = e.tabs[len(e.tabs)-1]
		}
	default:
		if n := len(e.history); n > 0 {
			current = e.history[n-1]
			e.history = e.history[:n-1]
		} else if len(e.tabs) > 0 {
			current = e.tabs[len(e.tabs)-1]
		}
	}
	if current == nil {
		return false
	}
	e.activateLocked(current)
	return true
}

func (e *Editor) activeLocked() *Tab {
	for _, tab := range e.tabs {
		if tab.active {
			return tab
		}
	}
	return nil
}

func (e *Editor) activateLocked(target *Tab) {
	for _, tab := range e.tabs {
		tab.active = tab == target
	}
	if n := len(e.history); n == 0 || e.history[n-1] != target {
		e.history = append(e.history, target)
	}
}

// forgetLocked drops every history entry of tab.
func (e *Editor) forgetLocked(tab *Tab) {
	kept := e.history[:0]
	for _, h := range e.history {
		if h != tab {
			kept = append(kept, h)
		}
	}
	e.history = kept
}

// ============================================================================
// Frozen rows by page id
// ============================================================================

// SetFrozen replaces the frozen rows of a page.
func (e *Editor) SetFrozen(id string, ranges ...freeze.RowRange) error {
	return e.withPage(id, func(p *page.Page) error { return p.SetFrozen(ranges...) })
}

// AddFrozen freezes rows of a page.
func (e *Editor) AddFrozen(id string, ranges ...freeze.RowRange) error {
	return e.withPage(id, func(p *page.Page) error { return p.AddFrozen(ranges...) })
}

// RemoveFrozen unfreezes rows of a page.
func (e *Editor) RemoveFrozen(id string, ranges ...freeze.RowRange) error {
	return e.withPage(id, func(p *page.Page) error { return p.RemoveFrozen(ranges...) })
}

// ClearFrozen unfreezes every row of a page.
func (e *Editor) ClearFrozen(id string) error {
	return e.withPage(id, func(p *page.Page) error { return p.ClearFrozen() })
}

func (e *Editor) withPage(id string, fn func(*page.Page) error) error {
	tab, ok := e.PageByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	return fn(tab.Page)
}

// ============================================================================
// Modes and themes
// ============================================================================

// SetMode changes the mode of the active page. User-initiated changes
// (passive == false) require EnableModeChange.
func (e *Editor) SetMode(mode string, passive bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tab := e.activeLocked()
	if tab == nil {
		return ErrNoActivePage
	}
	if !passive && !e.cfg.EnableModeChange {
		return ErrModeChangeDisabled
	}
	m, ok := e.lookupMode(mode)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
	tab.mode = m
	return nil
}

// SetTheme changes the editor theme.
func (e *Editor) SetTheme(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	th, ok := e.lookupTheme(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	e.theme = th
	return nil
}

// Theme returns the current theme.
func (e *Editor) Theme() modes.Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.theme
}

// SupportedModes returns the modes pages may use.
func (e *Editor) SupportedModes() []modes.Mode {
	return modes.SupportedModes(e.cfg.Modes)
}

// SupportedThemes returns the themes the editor may use.
func (e *Editor) SupportedThemes() []modes.Theme {
	return modes.SupportedThemes(e.cfg.Themes)
}

func (e *Editor) lookupMode(id string) (modes.Mode, bool) {
	for _, m := range modes.SupportedModes(e.cfg.Modes) {
		if m.ID == id {
			return m, true
		}
	}
	return modes.Mode{}, false
}

func (e *Editor) lookupTheme(name string) (modes.Theme, bool) {
	for _, th := range modes.SupportedThemes(e.cfg.Themes) {
		if th.Name == name {
			return th, true
		}
	}
	return modes.Theme{}, false
}
