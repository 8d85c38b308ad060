package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, paths ...string) (*Watcher, <-chan string) {
	t.Helper()
	w, err := New(WithDebounce(20 * time.Millisecond))
	require.NoError(t, err)
	for _, p := range paths {
		require.NoError(t, w.Add(p))
	}

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan string, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(path string) { changes <- path })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return w, changes
}

func waitChange(t *testing.T, changes <-chan string) string {
	t.Helper()
	select {
	case p := <-changes:
		return p
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
		return ""
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(target, []byte("a"), 0o644))

	_, changes := startWatcher(t, target)

	require.NoError(t, os.WriteFile(target, []byte("b"), 0o644))
	assert.Equal(t, target, waitChange(t, changes))
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "script.lua")
	other := filepath.Join(dir, "other.lua")
	require.NoError(t, os.WriteFile(target, []byte("a"), 0o644))

	_, changes := startWatcher(t, target)

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("b"), 0o644))
	assert.Equal(t, target, waitChange(t, changes))
}

func TestWatcherSeesRenameOver(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.yaml")
	tmp := filepath.Join(dir, ".config.yaml.tmp")
	require.NoError(t, os.WriteFile(target, []byte("a"), 0o644))

	_, changes := startWatcher(t, target)

	require.NoError(t, os.WriteFile(tmp, []byte("b"), 0o644))
	require.NoError(t, os.Rename(tmp, target))
	assert.Equal(t, target, waitChange(t, changes))
}

func TestWatcherAddRemove(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")

	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Add(a))
	require.NoError(t, w.Add(b))
	require.NoError(t, w.Add(a))
	assert.Equal(t, []string{a, b}, w.Files())

	require.NoError(t, w.Remove(a))
	assert.Equal(t, []string{b}, w.Files())
	require.NoError(t, w.Remove(b))
	assert.Empty(t, w.Files())
	require.NoError(t, w.Remove(b))
}
