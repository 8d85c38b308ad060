package editor

import (
	"log/slog"

	"github.com/dshills/frostline/internal/editor/modes"
	"github.com/dshills/frostline/internal/engine/document"
	"github.com/dshills/frostline/internal/page"
)

// Config holds editor settings.
type Config struct {
	// PageLimit is [min, max] open pages. Negative bounds are disabled.
	PageLimit [2]int
	// Modes restricts the selectable modes. Nil allows every registered mode.
	Modes []string
	// Themes restricts the selectable themes. Nil allows every registered theme.
	Themes []string
	// DefaultMode is used for pages opened without a mode.
	DefaultMode string
	// Theme is the initial theme.
	Theme string
	// EnableModeChange allows user-initiated mode changes.
	EnableModeChange bool
	// MarkerClass and MarkerType style frozen row markers.
	MarkerClass string
	MarkerType  document.MarkerType
}

// DefaultConfig returns the default editor configuration.
func DefaultConfig() Config {
	return Config{
		PageLimit:        [2]int{-1, -1},
		DefaultMode:      modes.DefaultMode,
		Theme:            "github",
		EnableModeChange: true,
		MarkerClass:      page.DefaultMarkerClass,
		MarkerType:       page.DefaultMarkerType,
	}
}

// Option configures an Editor during creation.
type Option func(*Editor)

// WithLogger sets the logger used by the editor and its pages.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder passed to every page.
func WithRecorder(r page.Recorder) Option {
	return func(e *Editor) {
		if r != nil {
			e.recorder = r
		}
	}
}
