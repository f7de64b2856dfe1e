package main

import (
	"fmt"

	"incomfort"
	"incomfort/internal/service"

	"github.com/spf13/cobra"
)

// field is a subcommand printing a single reading, for scripts.
type field struct {
	name  string
	short string
	value func(s *service.HeaterSession) string
}

var fields = []field{
	{"pressure", "Print the water pressure in bar", func(s *service.HeaterSession) string {
		return incomfort.FormatValue(s.Pressure())
	}},
	{"heater_temp", "Print the heater temperature", func(s *service.HeaterSession) string {
		return incomfort.FormatValue(s.HeaterTemp())
	}},
	{"tap_temp", "Print the tap water temperature", func(s *service.HeaterSession) string {
		return incomfort.FormatValue(s.TapTemp())
	}},
	{"display_code", "Print the display state", func(s *service.HeaterSession) string {
		return s.DisplayCode().String()
	}},
	{"room_temp", "Print the room temperature", func(s *service.HeaterSession) string {
		return incomfort.FormatValue(s.RoomTemp())
	}},
	{"setpoint", "Print the room setpoint", func(s *service.HeaterSession) string {
		return incomfort.FormatValue(s.Setpoint())
	}},
	{"setpoint_override", "Print the setpoint override", func(s *service.HeaterSession) string {
		return incomfort.FormatValue(s.SetpointOverride())
	}},
	{"burning", "Print 1 if the burner is on", func(s *service.HeaterSession) string {
		return incomfort.FormatBool(s.Burning())
	}},
	{"pumping", "Print 1 if the pump runs", func(s *service.HeaterSession) string {
		return incomfort.FormatBool(s.Pumping())
	}},
	{"tapping", "Print 1 if hot water is drawn", func(s *service.HeaterSession) string {
		return incomfort.FormatBool(s.Tapping())
	}},
	{"lockout", "Print 1 if the heater is locked out", func(s *service.HeaterSession) string {
		return incomfort.FormatBool(s.Lockout())
	}},
	{"error", "Same as lockout", func(s *service.HeaterSession) string {
		return incomfort.FormatBool(s.Error())
	}},
}

func (a *app) fieldCmd(f field) *cobra.Command {
	return &cobra.Command{
		Use:   f.name,
		Short: f.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.session(cmd, true)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), f.value(s))
			return err
		},
	}
}
