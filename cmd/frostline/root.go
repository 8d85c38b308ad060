package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/frostline/internal/app"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	logLevel   string
	metrics    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "frostline",
		Short: "Edit documents with frozen rows from Lua scripts",
		Long: `frostline opens a document as a page, freezes rows of it, and runs Lua
scripts that edit the page. Edits touching frozen rows are refused, and
frozen rows follow the text as lines are inserted or removed above them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a TOML or YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics to stderr on exit")

	cmd.AddCommand(
		newRunCmd(opts),
		newModesCmd(opts),
		newThemesCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// newApp starts the application with output bound to cmd.
func (o *rootOptions) newApp(cmd *cobra.Command) (*app.Application, error) {
	return app.New(app.Options{
		ConfigPath:    o.configPath,
		LogLevel:      o.logLevel,
		LogOutput:     cmd.ErrOrStderr(),
		ScriptOutput:  cmd.OutOrStdout(),
		EnableMetrics: o.metrics,
	})
}

// shutdown closes a and, when asked, dumps its metrics.
func (o *rootOptions) shutdown(cmd *cobra.Command, a *app.Application) {
	a.Shutdown()
	if o.metrics && a.Metrics() != nil {
		if err := a.Metrics().WriteText(cmd.ErrOrStderr()); err != nil {
			a.Logger().Warn("writing metrics", "error", err)
		}
	}
}
