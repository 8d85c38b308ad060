package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/frostline/internal/app"
	"github.com/dshills/frostline/internal/editor"
	"github.com/dshills/frostline/internal/engine/freeze"
	"github.com/dshills/frostline/internal/watcher"
)

type runOptions struct {
	file   string
	freeze []string
	watch  bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <script.lua>",
		Short: "Run a Lua script against a page",
		Long: `Opens --file (or an empty page) with the --freeze rows frozen, runs the
script, and prints the resulting text and frozen rows. With --watch the
script is run again whenever it, the file or the config changes.`,
		Example: `  frostline run edit.lua --file main.go --freeze 0:2 --freeze 10
  frostline run edit.lua --file main.go --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, root, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "document to open")
	f.StringArrayVar(&opts.freeze, "freeze", nil, "rows to freeze, as start:end or a single row (repeatable)")
	f.BoolVarP(&opts.watch, "watch", "w", false, "rerun when the script, file or config changes")
	return cmd
}

func runScript(cmd *cobra.Command, root *rootOptions, opts *runOptions, script string) error {
	rows, err := parseFreeze(opts.freeze)
	if err != nil {
		return err
	}

	a, err := root.newApp(cmd)
	if err != nil {
		return err
	}
	defer root.shutdown(cmd, a)

	err = runOnce(cmd.Context(), cmd.OutOrStdout(), a, opts.file, rows, script)
	if !opts.watch {
		return err
	}
	if err != nil {
		a.Logger().Error("run failed", "error", err)
	}
	return watchScript(cmd.Context(), cmd.OutOrStdout(), a, opts.file, rows, script)
}

func parseFreeze(values []string) ([]freeze.RowRange, error) {
	rows := make([]freeze.RowRange, 0, len(values))
	for _, v := range values {
		r, err := freeze.ParseRowRange(v)
		if err != nil {
			return nil, fmt.Errorf("--freeze: %w", err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// runOnce opens a fresh page, runs the script on it, reports and closes it.
func runOnce(ctx context.Context, out io.Writer, a *app.Application, file string, rows []freeze.RowRange, script string) error {
	var (
		tab *editor.Tab
		err error
	)
	if file != "" {
		tab, err = a.OpenFile(file, rows...)
	} else {
		tab, err = a.OpenText("", "", rows...)
	}
	if err != nil {
		return err
	}
	defer a.ClosePage(tab.ID(), true)

	res, err := a.RunScript(ctx, tab, script)
	if err != nil {
		return err
	}
	report(out, tab, res)
	return nil
}

func report(out io.Writer, tab *editor.Tab, res app.ScriptResult) {
	doc := tab.Document()
	fmt.Fprintf(out, "--- %s (%d lines, %s)\n", tab.Title(), doc.LineCount(), tab.Mode().Name)
	fmt.Fprintln(out, doc.Text())

	frozen := make([]string, 0, len(tab.Frozen()))
	for _, r := range tab.Frozen() {
		frozen = append(frozen, r.String())
	}
	if len(frozen) == 0 {
		frozen = append(frozen, "none")
	}
	fmt.Fprintf(out, "--- frozen: %s, rejected edits: %d\n", strings.Join(frozen, " "), res.Rejected)
}

// watchScript reruns the script on every change until ctx is done.
func watchScript(ctx context.Context, out io.Writer, a *app.Application, file string, rows []freeze.RowRange, script string) error {
	w, err := watcher.New(watcher.WithLogger(a.Logger()))
	if err != nil {
		return err
	}
	defer w.Close()

	for _, path := range []string{script, file} {
		if path == "" {
			continue
		}
		if err := w.Add(path); err != nil {
			return err
		}
	}

	go func() {
		if err := a.WatchConfig(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.Logger().Warn("config watch stopped", "error", err)
		}
	}()

	a.Logger().Info("watching", "files", w.Files())
	err = w.Run(ctx, func(path string) {
		fmt.Fprintf(out, "=== %s changed\n", path)
		if err := runOnce(ctx, out, a, file, rows, script); err != nil {
			a.Logger().Error("run failed", "error", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
