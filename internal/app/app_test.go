package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/frostline/internal/config"
	"github.com/dshills/frostline/internal/editor"
	"github.com/dshills/frostline/internal/engine/freeze"
)

type testApp struct {
	*Application
	logs   *bytes.Buffer
	prints *bytes.Buffer
}

func newTestApp(t *testing.T, mutate func(*config.Config)) *testApp {
	t.Helper()
	cfg := config.Default()
	cfg.Log.Level = "debug"
	cfg.Metrics.Enabled = true
	if mutate != nil {
		mutate(cfg)
	}

	logs, prints := new(bytes.Buffer), new(bytes.Buffer)
	a, err := NewWithConfig(cfg, Options{LogOutput: logs, ScriptOutput: prints})
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)
	return &testApp{Application: a, logs: logs, prints: prints}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		a, err := New(Options{LogOutput: new(bytes.Buffer)})
		require.NoError(t, err)
		defer a.Shutdown()

		assert.Equal(t, "github", a.Editor().Theme().Name)
		assert.NotNil(t, a.Logger())
		assert.Equal(t, config.Default().Editor, a.Config().Editor)
	})

	t.Run("bad config file", func(t *testing.T) {
		path := writeFile(t, "frostline.toml", "[editor]\ntheme = \"neon\"\n")
		_, err := New(Options{ConfigPath: path})
		assert.ErrorIs(t, err, ErrInitialization)
		assert.ErrorIs(t, err, config.ErrValidationFailed)
	})

	t.Run("invalid config value", func(t *testing.T) {
		cfg := config.Default()
		cfg.Log.Format = "xml"
		_, err := NewWithConfig(cfg, Options{})
		assert.ErrorIs(t, err, ErrInitialization)
	})

	t.Run("metrics disabled", func(t *testing.T) {
		a := newTestApp(t, func(c *config.Config) { c.Metrics.Enabled = false })
		assert.Nil(t, a.Metrics())
		_, err := a.OpenText("x", "a")
		assert.NoError(t, err)
	})
}

func TestOpenFile(t *testing.T) {
	a := newTestApp(t, nil)
	path := writeFile(t, "main.go", "package main\n\nfunc main() {}\n")

	tab, err := a.OpenFile(path, freeze.RowRange{Start: 0, End: 0})
	require.NoError(t, err)
	assert.Equal(t, "golang", tab.Mode().ID)
	assert.Equal(t, "main.go", tab.Title())
	assert.Equal(t, path, tab.HoverTitle())
	assert.Equal(t, []freeze.RowRange{{Start: 0, End: 0}}, tab.Frozen())
	assert.Same(t, tab, a.Editor().ActivePage())
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Metrics().pages))

	_, err = a.OpenFile(filepath.Join(t.TempDir(), "missing.go"))
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "open", opErr.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenAndClosePages(t *testing.T) {
	a := newTestApp(t, func(c *config.Config) { c.Editor.PageLimit = []int{1, 2} })

	first, err := a.OpenText("one", "1")
	require.NoError(t, err)
	_, err = a.OpenText("two", "2")
	require.NoError(t, err)

	_, err = a.OpenText("three", "3")
	assert.ErrorIs(t, err, editor.ErrPageLimit)

	require.NoError(t, a.ClosePage(first.ID(), false))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Metrics().pages))

	last := a.Editor().Pages()[0]
	assert.ErrorIs(t, a.ClosePage(last.ID(), false), editor.ErrPageLimit)
}

func TestRunScript(t *testing.T) {
	a := newTestApp(t, nil)
	tab, err := a.OpenText("doc", "a\nb\nc\nd", freeze.RowRange{Start: 1, End: 2})
	require.NoError(t, err)

	script := writeFile(t, "edit.lua", `
		fl.insert(0, 0, "top\n")
		local ok, err = pcall(fl.insert, 2, 0, "x")
		print(ok, fl.line_count())
		for _, r in ipairs(fl.frozen()) do print(r[1], r[2]) end
	`)

	res, err := a.RunScript(context.Background(), tab, script)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rejected)
	assert.Equal(t, "top\na\nb\nc\nd", tab.Document().Text())
	assert.Equal(t, "false\t5\n2\t3\n", a.prints.String())
	assert.Contains(t, a.logs.String(), "script finished")

	m := a.Metrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("insert")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.shifts.WithLabelValues("insert")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scripts.WithLabelValues("ok")))
}

func TestRunScriptFailure(t *testing.T) {
	a := newTestApp(t, nil)
	tab, err := a.OpenText("doc", "a\nb", freeze.RowRange{Start: 0, End: 0})
	require.NoError(t, err)

	script := writeFile(t, "bad.lua", `fl.remove(0, 0, 1, 0)`)
	res, err := a.RunScript(context.Background(), tab, script)
	assert.ErrorContains(t, err, "frozen")
	assert.Equal(t, 1, res.Rejected)
	assert.Equal(t, "a\nb", tab.Document().Text())
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Metrics().scripts.WithLabelValues("error")))
	assert.Contains(t, a.logs.String(), "script failed")
}

func TestApplyConfig(t *testing.T) {
	a := newTestApp(t, func(c *config.Config) { c.Log.Level = "info" })

	a.Logger().Debug("before")
	assert.NotContains(t, a.logs.String(), "before")

	cfg := config.Default()
	cfg.Log.Level = "debug"
	cfg.Editor.Theme = "monokai"
	require.NoError(t, a.ApplyConfig(cfg))

	a.Logger().Debug("after")
	assert.Contains(t, a.logs.String(), "after")
	assert.Equal(t, "monokai", a.Editor().Theme().Name)
	assert.Same(t, cfg, a.Config())

	bad := config.Default()
	bad.Editor.Theme = "neon"
	assert.ErrorIs(t, a.ApplyConfig(bad), config.ErrValidationFailed)
	assert.Same(t, cfg, a.Config())
}

func TestWatchConfig(t *testing.T) {
	path := writeFile(t, "frostline.toml", "[editor]\ntheme = \"github\"\n")
	a, err := New(Options{ConfigPath: path, LogOutput: new(bytes.Buffer)})
	require.NoError(t, err)
	defer a.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.WatchConfig(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[editor]\ntheme = \"dracula\"\n"), 0o644))

	assert.Eventually(t, func() bool {
		return a.Editor().Theme().Name == "dracula"
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestShutdown(t *testing.T) {
	a := newTestApp(t, nil)
	tab, err := a.OpenText("doc", "a")
	require.NoError(t, err)

	a.Shutdown()
	a.Shutdown()
	assert.True(t, tab.IsClosed())
	assert.Empty(t, a.Editor().Pages())

	_, err = a.OpenText("again", "b")
	assert.ErrorIs(t, err, ErrClosed)
}
