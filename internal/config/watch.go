package config

import (
	"context"
	"log/slog"

	"github.com/dshills/frostline/internal/watcher"
)

// Watch reloads the configuration at path each time the file changes and
// passes the result to fn. Invalid files are reported through the error
// argument and the previous configuration stays in effect for the caller.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, logger *slog.Logger, fn func(*Config, error)) error {
	w, err := watcher.New(watcher.WithLogger(logger))
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return err
	}
	return w.Run(ctx, func(string) {
		fn(Load(path))
	})
}
