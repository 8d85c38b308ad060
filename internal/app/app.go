package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/frostline/internal/config"
	"github.com/dshills/frostline/internal/editor"
	"github.com/dshills/frostline/internal/editor/modes"
	"github.com/dshills/frostline/internal/engine/document"
	"github.com/dshills/frostline/internal/engine/freeze"
	"github.com/dshills/frostline/internal/page"
	"github.com/dshills/frostline/internal/plugin/lua"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty uses defaults.
	ConfigPath string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// ScriptOutput receives print output of scripts. Defaults to os.Stdout.
	ScriptOutput io.Writer

	// EnableMetrics turns metrics on regardless of the configuration.
	EnableMetrics bool
}

// Application owns the editor and the services around it.
type Application struct {
	mu sync.RWMutex

	opts    Options
	cfg     *config.Config
	logger  *slog.Logger
	level   *slog.LevelVar
	metrics *Metrics
	editor  *editor.Editor
	closed  bool
}

// New loads the configuration and starts the application.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	return NewWithConfig(cfg, opts)
}

// NewWithConfig starts the application with an already loaded configuration.
func NewWithConfig(cfg *config.Config, opts Options) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.ScriptOutput == nil {
		opts.ScriptOutput = os.Stdout
	}

	a := &Application{opts: opts, cfg: cfg}

	a.logger, a.level = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(a.logLevel(cfg)),
		JSON:   cfg.Log.Format == "json",
		Output: opts.LogOutput,
	})

	var recorder page.Recorder = page.NopRecorder()
	if cfg.Metrics.Enabled || opts.EnableMetrics {
		ns := cfg.Metrics.Namespace
		if ns == "" {
			ns = "frostline"
		}
		a.metrics = NewMetrics(ns)
		recorder = a.metrics
	}

	a.editor = editor.New(editorConfig(cfg),
		editor.WithLogger(a.logger.With("component", "editor")),
		editor.WithRecorder(recorder),
	)

	a.logger.Debug("application started", "config", opts.ConfigPath, "metrics", a.metrics != nil)
	return a, nil
}

func (a *Application) logLevel(cfg *config.Config) string {
	if a.opts.LogLevel != "" {
		return a.opts.LogLevel
	}
	return cfg.Log.Level
}

// editorConfig maps the loaded settings onto the editor.
func editorConfig(cfg *config.Config) editor.Config {
	ec := editor.DefaultConfig()
	ec.PageLimit = cfg.PageLimit()
	ec.DefaultMode = cfg.Editor.DefaultMode
	ec.Modes = cfg.Editor.Modes
	ec.Themes = cfg.Editor.Themes
	ec.Theme = cfg.Editor.Theme
	ec.EnableModeChange = cfg.Editor.EnableModeChange
	ec.MarkerClass = cfg.Freeze.MarkerClass
	ec.MarkerType = document.MarkerType(cfg.Freeze.MarkerType)
	return ec
}

// ============================================================================
// Accessors
// ============================================================================

// Config returns the active configuration.
func (a *Application) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}

// Metrics returns the metrics, or nil when metrics are disabled.
func (a *Application) Metrics() *Metrics {
	return a.metrics
}

// Editor returns the page manager.
func (a *Application) Editor() *editor.Editor {
	return a.editor
}

// ============================================================================
// Pages
// ============================================================================

// OpenFile opens path as a new active page with the given rows frozen. The
// mode is picked from the file name.
func (a *Application) OpenFile(path string, frozen ...freeze.RowRange) (*editor.Tab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	return a.open("open", path, editor.BasicPage{
		Title:      filepath.Base(path),
		HoverTitle: path,
		Mode:       modes.ModeForPath(path).ID,
		Value:      string(data),
		Frozen:     frozen,
	})
}

// OpenText opens text as a new active page.
func (a *Application) OpenText(title, text string, frozen ...freeze.RowRange) (*editor.Tab, error) {
	return a.open("open", title, editor.BasicPage{
		Title:  title,
		Value:  text,
		Frozen: frozen,
	})
}

func (a *Application) open(op, target string, bp editor.BasicPage) (*editor.Tab, error) {
	if a.isClosed() {
		return nil, ErrClosed
	}
	tab, err := a.editor.SetPage(bp)
	if err != nil {
		return nil, NewOperationError(op, target, err)
	}
	a.countPages()
	return tab, nil
}

// ClosePage closes a page. Non-passive closes honor fixed pages and the
// page limit, as a user-initiated close would.
func (a *Application) ClosePage(id string, passive bool) error {
	if err := a.editor.ClosePage(id, passive); err != nil {
		return NewOperationError("close", id, err)
	}
	a.countPages()
	return nil
}

func (a *Application) countPages() {
	if a.metrics != nil {
		a.metrics.PagesOpen(len(a.editor.Pages()))
	}
}

// ============================================================================
// Scripts
// ============================================================================

// ScriptResult summarizes a script run.
type ScriptResult struct {
	Duration time.Duration
	// Rejected counts edits refused by frozen rows, including those the
	// script caught with pcall.
	Rejected int
}

// RunScript runs the Lua file at path against tab in a fresh sandbox.
func (a *Application) RunScript(ctx context.Context, tab *editor.Tab, path string) (ScriptResult, error) {
	if a.isClosed() {
		return ScriptResult{}, ErrClosed
	}

	state := lua.NewState(lua.WithOutput(a.opts.ScriptOutput))
	defer state.Close()

	mod := lua.NewPageModule(tab.Page, tab.Document())
	if err := state.Register(mod); err != nil {
		return ScriptResult{}, NewOperationError("script", path, err)
	}

	start := time.Now()
	err := state.DoFile(ctx, path)
	res := ScriptResult{Duration: time.Since(start), Rejected: mod.Rejected()}
	if a.metrics != nil {
		a.metrics.ScriptRun(res.Duration, err)
	}

	log := a.logger.With("script", path, "page", tab.ID())
	if err != nil {
		log.Warn("script failed", "error", err, "rejected", res.Rejected)
		return res, NewOperationError("script", path, err)
	}
	log.Info("script finished", "duration", res.Duration, "rejected", res.Rejected,
		"frozen", fmt.Sprint(tab.Frozen()))
	return res, nil
}

// ============================================================================
// Configuration reload
// ============================================================================

// ApplyConfig switches to cfg. Only the log level and theme take effect on
// a running application; page limits and markers apply to new pages only
// after a restart.
func (a *Application) ApplyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	old := a.cfg
	a.cfg = cfg
	a.mu.Unlock()

	a.level.Set(ParseLogLevel(a.logLevel(cfg)).Slog())
	if cfg.Editor.Theme != old.Editor.Theme {
		if err := a.editor.SetTheme(cfg.Editor.Theme); err != nil {
			return err
		}
	}
	a.logger.Info("config applied", "level", cfg.Log.Level, "theme", cfg.Editor.Theme)
	return nil
}

// WatchConfig applies the configuration file every time it changes, until
// ctx is done. Invalid files are logged and ignored.
func (a *Application) WatchConfig(ctx context.Context) error {
	if a.opts.ConfigPath == "" {
		return nil
	}
	return config.Watch(ctx, a.opts.ConfigPath, a.logger, func(cfg *config.Config, err error) {
		if err == nil {
			err = a.ApplyConfig(cfg)
		}
		if err != nil {
			a.logger.Warn("config reload failed", "path", a.opts.ConfigPath, "error", err)
		}
	})
}

// ============================================================================
// Lifecycle
// ============================================================================

func (a *Application) isClosed() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.closed
}

// Shutdown closes every page. It is safe to call more than once.
func (a *Application) Shutdown() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.mu.Unlock()

	a.editor.CloseAll()
	a.countPages()
	a.logger.Debug("application stopped")
}
