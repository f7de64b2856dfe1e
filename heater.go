package incomfort

import (
	"encoding/json"
	"time"
)

// DisplayState is the boiler operating mode reported by the gateway's display code.
type DisplayState uint8

const (
	Unknown DisplayState = iota
	SensorTest
	Service
	Tapwater
	TapwaterInt
	BoilerInt
	BoilerExt
	PostrunBoiler
	CentralHeating
	Opentherm
	Buffer
	Frost
	PostrunCH
	Standby
	CentralHeatingRF
)

var displayLabels = [...]string{
	Unknown:          "unknown",
	SensorTest:       "sensortest",
	Service:          "service",
	Tapwater:         "tapwater",
	TapwaterInt:      "tapwater int.",
	BoilerInt:        "boiler int.",
	BoilerExt:        "boiler ext.",
	PostrunBoiler:    "postrun boiler",
	CentralHeating:   "central heating",
	Opentherm:        "opentherm",
	Buffer:           "buffer",
	Frost:            "frost",
	PostrunCH:        "postrun ch",
	Standby:          "standby",
	CentralHeatingRF: "central heating rf",
}

// DisplayStates lists every known state, Unknown excluded.
func DisplayStates() []DisplayState {
	out := make([]DisplayState, 0, len(displayLabels)-1)
	for s := SensorTest; s <= CentralHeatingRF; s++ {
		out = append(out, s)
	}
	return out
}

func (s DisplayState) String() string {
	if int(s) < len(displayLabels) {
		return displayLabels[s]
	}
	return displayLabels[Unknown]
}

func (s DisplayState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DisplayState) UnmarshalJSON(b []byte) error {
	var label string
	if err := json.Unmarshal(b, &label); err != nil {
		return err
	}
	*s = ParseDisplayState(label)
	return nil
}

// ParseDisplayState maps a label back to its state; unrecognised labels give Unknown.
func ParseDisplayState(label string) DisplayState {
	for i, l := range displayLabels {
		if l == label {
			return DisplayState(i)
		}
	}
	return Unknown
}

// HeaterSnapshot is the decoded view of one status poll.
// It is a plain value: a new poll produces a new snapshot.
type HeaterSnapshot struct {
	PressureBar       float64      `json:"pressure_bar"`
	HeaterTempC       float64      `json:"heater_temp_c"`
	TapTempC          float64      `json:"tap_temp_c"`
	RoomTempC         float64      `json:"room_temp_c"`
	SetpointC         float64      `json:"setpoint_c"`
	SetpointOverrideC float64      `json:"setpoint_override_c"`
	Display           DisplayState `json:"display_code"`
	Burning           bool         `json:"burning"`
	Lockout           bool         `json:"lockout"`
	Pumping           bool         `json:"pumping"`
	Tapping           bool         `json:"tapping"`
}

// HeaterState is a snapshot tagged with its heater index and the time it was taken.
type HeaterState struct {
	Heater int `json:"heater"`
	HeaterSnapshot
	UpdatedAt time.Time `json:"updated_at"`
}
