// Package wire decodes and encodes the LAN2RF gateway's byte conventions.
package wire

import (
	"math"

	"incomfort"
)

// Setpoint limits accepted by the gateway, in °C.
const (
	SetpointMinC = 5.0
	SetpointMaxC = 30.0

	// MaxEncodedSetpoint is the wire value for SetpointMaxC.
	MaxEncodedSetpoint = 250
)

// IO bitmask flags.
const (
	flagLockout = 0x01
	flagPumping = 0x02
	flagTapping = 0x04
	flagBurning = 0x08
)

var displayCodes = map[int]incomfort.DisplayState{
	85:  incomfort.SensorTest,
	170: incomfort.Service,
	204: incomfort.Tapwater,
	51:  incomfort.TapwaterInt,
	240: incomfort.BoilerInt,
	15:  incomfort.BoilerExt,
	153: incomfort.PostrunBoiler,
	102: incomfort.CentralHeating,
	0:   incomfort.Opentherm,
	255: incomfort.Buffer,
	24:  incomfort.Frost,
	231: incomfort.PostrunCH,
	126: incomfort.Standby,
	37:  incomfort.CentralHeatingRF,
}

// Flags are the independent status bits of the IO byte.
type Flags struct {
	Burning bool
	Lockout bool
	Pumping bool
	Tapping bool
}

// DecodePair rebuilds a little-endian fixed-point value in hundredths.
func DecodePair(lsb, msb int) (float64, error) {
	if err := checkByte("decode pair lsb", lsb); err != nil {
		return 0, err
	}
	if err := checkByte("decode pair msb", msb); err != nil {
		return 0, err
	}
	return float64(lsb+msb*256) / 100.0, nil
}

// DecodeDisplayCode looks the code up in the fixed firmware table.
func DecodeDisplayCode(code int) incomfort.DisplayState {
	if s, ok := displayCodes[code]; ok {
		return s
	}
	return incomfort.Unknown
}

// DisplayCode is the inverse of DecodeDisplayCode. Unknown has no code.
func DisplayCode(s incomfort.DisplayState) (int, bool) {
	for code, state := range displayCodes {
		if state == s {
			return code, true
		}
	}
	return 0, false
}

func DecodeFlags(io int) Flags {
	return Flags{
		Burning: io&flagBurning != 0,
		Lockout: io&flagLockout != 0,
		Pumping: io&flagPumping != 0,
		Tapping: io&flagTapping != 0,
	}
}

// EncodeSetpoint clamps celsius to [SetpointMinC, SetpointMaxC] without error
// and returns tenths of a degree above the floor. NaN encodes as 0.
func EncodeSetpoint(celsius float64) int {
	if math.IsNaN(celsius) {
		return 0
	}
	c := math.Min(math.Max(celsius, SetpointMinC), SetpointMaxC)
	return int(math.Round((c - SetpointMinC) * 10))
}

// DecodeSetpoint returns the temperature an encoded setpoint stands for.
func DecodeSetpoint(v int) float64 {
	return SetpointMinC + float64(v)/10
}

func checkByte(op string, v int) error {
	if v < 0 || v > 255 {
		return &incomfort.DomainError{Op: op, Value: v, Reason: "outside [0,255]"}
	}
	return nil
}
