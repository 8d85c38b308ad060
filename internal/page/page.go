package page

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/frostline/internal/engine/document"
	"github.com/dshills/frostline/internal/engine/freeze"
)

// Marker pairs a frozen range with the host marker installed for it.
type Marker struct {
	Range freeze.RowRange
	ID    document.MarkerID
}

// Page owns the frozen rows of one host document.
type Page struct {
	mu sync.Mutex

	id   string
	host Host

	frozen  freeze.Set
	markers []Marker
	initial []freeze.RowRange

	markerClass string
	markerType  document.MarkerType

	guard    *Guard
	unsubs   []func()
	logger   *slog.Logger
	recorder Recorder
	closed   bool
}

// New creates a page over host and starts tracking its change events.
func New(host Host, opts ...Option) (*Page, error) {
	if host == nil {
		return nil, ErrNoHost
	}

	p := &Page{
		host:        host,
		markerClass: DefaultMarkerClass,
		markerType:  DefaultMarkerType,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder:    NopRecorder(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.id == "" {
		p.id = uuid.NewString()
	}
	p.logger = p.logger.With("page", p.id)

	if err := validate(p.initial); err != nil {
		return nil, err
	}

	p.guard = &Guard{page: p}
	p.unsubs = append(p.unsubs,
		host.OnChange(p.handleChange),
		host.OnChangeCursor(p.guard.handleChangeCursor),
	)

	p.mu.Lock()
	p.frozen.Add(p.initial...)
	p.initial = nil
	p.refreshMarkersLocked()
	p.mu.Unlock()

	return p, nil
}

// ID returns the page id.
func (p *Page) ID() string {
	return p.id
}

// Host returns the guarded document.
func (p *Page) Host() Host {
	return p.host
}

// Guard returns the mutation guard for this page.
func (p *Page) Guard() *Guard {
	return p.guard
}

// Frozen returns the normalized frozen ranges.
func (p *Page) Frozen() []freeze.RowRange {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frozen.Ranges()
}

// IsFrozen returns true if row is frozen.
func (p *Page) IsFrozen(row int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frozen.IsFrozen(row)
}

// Markers returns the installed frozen row markers.
func (p *Page) Markers() []Marker {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Marker, len(p.markers))
	copy(out, p.markers)
	return out
}

// SetFrozen replaces every frozen range with the given ones.
func (p *Page) SetFrozen(ranges ...freeze.RowRange) error {
	return p.mutate("set", ranges, func(s *freeze.Set) {
		s.SetRanges(ranges...)
	})
}

// AddFrozen freezes the given ranges, merging with touching ones.
func (p *Page) AddFrozen(ranges ...freeze.RowRange) error {
	return p.mutate("add", ranges, func(s *freeze.Set) {
		s.Add(ranges...)
	})
}

// RemoveFrozen unfreezes the given ranges, splitting or trimming existing ones.
func (p *Page) RemoveFrozen(ranges ...freeze.RowRange) error {
	return p.mutate("remove", ranges, func(s *freeze.Set) {
		s.Remove(ranges...)
	})
}

// ClearFrozen unfreezes every row.
func (p *Page) ClearFrozen() error {
	return p.mutate("clear", nil, func(s *freeze.Set) {
		s.Reset()
	})
}

func (p *Page) mutate(op string, ranges []freeze.RowRange, fn func(*freeze.Set)) error {
	if err := validate(ranges); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	defer p.refreshMarkersLocked()

	fn(&p.frozen)
	p.logger.Debug("frozen rows changed", "op", op, "frozen", p.frozen.String())
	return nil
}

func validate(ranges []freeze.RowRange) error {
	for _, r := range ranges {
		if !r.IsValid() {
			return fmt.Errorf("%w: %s", freeze.ErrInvalidRange, r)
		}
	}
	return nil
}

// handleChange shifts frozen ranges after a structural change.
func (p *Page) handleChange(ev document.ChangeEvent) {
	action := freeze.ActionInsert
	if ev.Action == document.ActionRemove {
		action = freeze.ActionRemove
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	if !p.frozen.Shift(action, ev.Start.Row, ev.End.Row) {
		return
	}
	defer p.refreshMarkersLocked()

	p.frozen.Normalize()
	p.recorder.Shifted(action.String())
	p.logger.Debug("frozen rows shifted",
		"action", action.String(),
		"top", ev.Start.Row,
		"bottom", ev.End.Row,
		"frozen", p.frozen.String(),
	)
}

// refreshMarkersLocked releases every installed marker and installs one per
// frozen range. Callers hold p.mu.
func (p *Page) refreshMarkersLocked() {
	p.releaseMarkersLocked()
	if p.closed {
		return
	}

	ranges := p.frozen.Ranges()
	markers := make([]Marker, 0, len(ranges))
	for _, r := range ranges {
		rng := document.Range{
			Start: document.Point{Row: r.Start},
			End:   document.Point{Row: r.End, Column: 1},
		}
		id := p.host.AddMarker(rng, p.markerClass, p.markerType, false)
		markers = append(markers, Marker{Range: r, ID: id})
	}
	p.markers = markers
	p.recorder.MarkersRefreshed(len(markers))
}

func (p *Page) releaseMarkersLocked() {
	markers := p.markers
	p.markers = nil
	for _, m := range markers {
		p.host.RemoveMarker(m.ID)
	}
}

// Close releases all markers and stops tracking the host. If the host has a
// Close method it is called as well. Close is idempotent.
func (p *Page) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.releaseMarkersLocked()
	p.frozen.Reset()
	unsubs := p.unsubs
	p.unsubs = nil
	p.mu.Unlock()

	for _, stop := range unsubs {
		stop()
	}
	if c, ok := p.host.(interface{ Close() }); ok {
		c.Close()
	}
	p.logger.Debug("page closed")
}

// IsClosed reports whether Close was called.
func (p *Page) IsClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// RowsOf converts a document range into the rows it touches.
// Columns are ignored.
func RowsOf(rng document.Range) freeze.RowRange {
	rng = document.NewRange(rng.Start, rng.End)
	return freeze.RowRange{Start: rng.Start.Row, End: rng.End.Row}
}

// RowsOfAll converts document ranges into row ranges.
func RowsOfAll(rngs []document.Range) []freeze.RowRange {
	out := make([]freeze.RowRange, len(rngs))
	for i, rng := range rngs {
		out[i] = RowsOf(rng)
	}
	return out
}
