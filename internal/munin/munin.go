// Package munin renders heater readings as a munin multigraph plugin.
package munin

import (
	"fmt"
	"io"

	"incomfort"
)

// Report writes the current values of the three graphs.
func Report(w io.Writer, s incomfort.HeaterSnapshot) error {
	_, err := fmt.Fprintf(w, `multigraph incomfort_temp
heater.value %s
tap.value %s

multigraph incomfort_room_temp
room.value %s
setpoint.value %s

multigraph incomfort_pressure
pressure.value %s
`,
		incomfort.FormatValue(s.HeaterTempC),
		incomfort.FormatValue(s.TapTempC),
		incomfort.FormatValue(s.RoomTempC),
		incomfort.FormatValue(s.SetpointC),
		incomfort.FormatValue(s.PressureBar),
	)
	return err
}

const graphConfig = `multigraph incomfort_temp
graph_title incomfort temperatures
graph_vlabel degrees celsius
graph_category incomfort
heater.label heater
tap.label tap

multigraph incomfort_room_temp
graph_title incomfort room temperatures
graph_vlabel degrees celsius
graph_category incomfort
room.label room
setpoint.label setpoint

multigraph incomfort_pressure
graph_title incomfort pressure
graph_vlabel bar
graph_category incomfort
pressure.label pressure
`

// Config writes the graph definitions munin asks for with "config".
func Config(w io.Writer) error {
	_, err := io.WriteString(w, graphConfig)
	return err
}

// Autoconf answers munin's "autoconf" query.
func Autoconf(w io.Writer) error {
	_, err := io.WriteString(w, "yes\n")
	return err
}
