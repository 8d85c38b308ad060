package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/frostline/internal/editor/modes"
)

func newModesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the language modes pages can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			defer root.shutdown(cmd, a)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tHIGHLIGHTER\tNEW PAGE TITLE")
			for _, m := range a.Editor().SupportedModes() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, modes.Namespace("mode", m.Mode), modes.DefaultTitle(0, m, "default"))
			}
			return tw.Flush()
		},
	}
}

func newThemesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the editor themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			defer root.shutdown(cmd, a)

			current := a.Editor().Theme().Name
			for _, th := range a.Editor().SupportedThemes() {
				marker := " "
				if th.Name == current {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, th.Name)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "frostline %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
