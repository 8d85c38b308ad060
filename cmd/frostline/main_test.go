package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "frostline dev (commit unknown, built unknown)\n", out)
}

func TestModes(t *testing.T) {
	out, _, err := execute(t, "modes")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "ace/mode/golang")
	assert.Contains(t, out, "Dockerfile")
}

func TestModesRestrictedByConfig(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "frostline.yaml", "editor:\n  modes: [text, lua]\n")
	out, _, err := execute(t, "modes", "--config", cfg)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
	assert.NotContains(t, out, "golang")
}

func TestThemes(t *testing.T) {
	out, _, err := execute(t, "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "* github\n")
	assert.Contains(t, out, "  monokai\n")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "notes.md", "title\nkeep\nkeep\nbody")
	script := writeFile(t, dir, "edit.lua", `
		fl.insert(0, 0, "header\n")
		local ok = pcall(fl.remove, 2, 0, 3, 0)
		print("removed", ok)
		fl.insert(fl.line_count() - 1, 4, "!")
	`)

	out, stderr, err := execute(t, "run", script, "--file", file, "--freeze", "1:2", "--metrics")
	require.NoError(t, err)

	assert.Contains(t, out, "removed\tfalse\n")
	assert.Contains(t, out, "--- notes.md (5 lines, markdown)\n")
	assert.Contains(t, out, "header\ntitle\nkeep\nkeep\nbody!\n")
	assert.Contains(t, out, "--- frozen: [2,3], rejected edits: 1\n")
	assert.Contains(t, stderr, `frostline_guard_rejections_total{op="remove"} 1`)

	// The file on disk is untouched.
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "title\nkeep\nkeep\nbody", string(data))
}

func TestRunEmptyPage(t *testing.T) {
	script := writeFile(t, t.TempDir(), "hello.lua", `fl.insert(0, 0, "hello")`)
	out, _, err := execute(t, "run", script)
	require.NoError(t, err)
	assert.Contains(t, out, "--- default.txt (1 lines, text)\nhello\n")
	assert.Contains(t, out, "--- frozen: none, rejected edits: 0\n")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "bad.lua", `fl.insert(0, 0, "x")`)

	_, _, err := execute(t, "run", script, "--freeze", "0")
	assert.ErrorContains(t, err, "frozen")

	_, _, err = execute(t, "run", script, "--freeze", "3:1")
	assert.ErrorContains(t, err, "--freeze")

	_, _, err = execute(t, "run", script, "--file", filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = execute(t, "run")
	assert.Error(t, err)

	_, _, err = execute(t, "run", script, "--config", filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
