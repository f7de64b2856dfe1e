package main

import (
	"fmt"

	"incomfort/internal/service"

	"github.com/spf13/cobra"
)

func (a *app) heatersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heaters",
		Short: "Print the indices of the heaters the gateway knows, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client(cmd, true)
			if err != nil {
				return err
			}
			heaters, err := service.ListPresentHeaters(cmd.Context(), c)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, h := range heaters {
				if _, err := fmt.Fprintln(out, h); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
