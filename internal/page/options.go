package page

import (
	"log/slog"

	"github.com/dshills/frostline/internal/engine/document"
	"github.com/dshills/frostline/internal/engine/freeze"
)

// Default marker settings.
const (
	DefaultMarkerClass = "ace_active-line ace_readonly-line"
	DefaultMarkerType  = document.MarkerFullLine
)

// Option configures a Page during creation.
type Option func(*Page)

// WithID sets the page id. Without it a random UUID is used.
func WithID(id string) Option {
	return func(p *Page) {
		p.id = id
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Page) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(p *Page) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithMarker sets the class and type of frozen row markers.
func WithMarker(class string, typ document.MarkerType) Option {
	return func(p *Page) {
		if class != "" {
			p.markerClass = class
		}
		if typ != "" {
			p.markerType = typ
		}
	}
}

// WithFrozen freezes the given ranges when the page is created.
func WithFrozen(ranges ...freeze.RowRange) Option {
	return func(p *Page) {
		p.initial = append(p.initial, ranges...)
	}
}
