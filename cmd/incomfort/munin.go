package main

import (
	"incomfort/internal/munin"

	"github.com/spf13/cobra"
)

func (a *app) muninCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "munin [config|autoconf]",
		Short:     "Run as a munin multigraph plugin",
		Long:      "Never prompts: the gateway must come from a flag, the config or a gateway file.",
		ValidArgs: []string{"config", "autoconf"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				switch args[0] {
				case "config":
					return munin.Config(out)
				case "autoconf":
					return munin.Autoconf(out)
				}
			}
			s, err := a.session(cmd, false)
			if err != nil {
				return err
			}
			return munin.Report(out, s.Snapshot())
		},
	}
}
