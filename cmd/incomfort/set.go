package main

import (
	"fmt"
	"strconv"

	"incomfort/internal/wire"

	"github.com/spf13/cobra"
)

func (a *app) setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <celsius>",
		Short: "Write the room setpoint and print the resulting summary",
		Long:  "The setpoint is clamped to 5..30 degrees in steps of 0.1.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			celsius, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid setpoint %q", args[0])
			}
			s, err := a.session(cmd, true)
			if err != nil {
				return err
			}

			a.log.ForHeater(a.heater).Infow("writing setpoint",
				"requested", celsius,
				"sent", wire.DecodeSetpoint(wire.EncodeSetpoint(celsius)))
			if err := s.SetSetpoint(cmd.Context(), celsius); err != nil {
				return fmt.Errorf("heater %d: %w", a.heater, err)
			}
			return printSummary(cmd.OutOrStdout(), s)
		},
	}
}
