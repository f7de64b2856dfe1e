package main

import (
	"fmt"
	"io"

	"incomfort"
	"incomfort/internal/service"
)

const summaryFormat = `Pressure     %s
Heater temp. %s
Tap temp.    %s
Display code %s
Room temp.   %s
Setpoint     %s
Stpt. ovrd.  %s

Burning?     %s
Pumping?     %s
Tapping?     %s
Error?       %s
`

func printSummary(w io.Writer, s *service.HeaterSession) error {
	_, err := fmt.Fprintf(w, summaryFormat,
		incomfort.FormatValue(s.Pressure()),
		incomfort.FormatValue(s.HeaterTemp()),
		incomfort.FormatValue(s.TapTemp()),
		s.DisplayCode(),
		incomfort.FormatValue(s.RoomTemp()),
		incomfort.FormatValue(s.Setpoint()),
		incomfort.FormatValue(s.SetpointOverride()),
		titleBool(s.Burning()),
		titleBool(s.Pumping()),
		titleBool(s.Tapping()),
		titleBool(s.Lockout()),
	)
	return err
}

// titleBool spells flags as the summary always has: True or False.
func titleBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
