package wire

import "incomfort"

const opDecodeStatus = "decode status"

// DecodeSnapshot decodes every field of raw or none of them.
// The first missing field yields a ProtocolError, the first out-of-range one a DomainError.
func DecodeSnapshot(raw incomfort.RawStatus) (incomfort.HeaterSnapshot, error) {
	var s incomfort.HeaterSnapshot
	pairs := []struct {
		lsb, msb string
		dst      *float64
	}{
		{incomfort.FieldPressureLSB, incomfort.FieldPressureMSB, &s.PressureBar},
		{incomfort.FieldHeaterTempLSB, incomfort.FieldHeaterTempMSB, &s.HeaterTempC},
		{incomfort.FieldTapTempLSB, incomfort.FieldTapTempMSB, &s.TapTempC},
		{incomfort.FieldRoomTempLSB, incomfort.FieldRoomTempMSB, &s.RoomTempC},
		{incomfort.FieldSetpointLSB, incomfort.FieldSetpointMSB, &s.SetpointC},
		{incomfort.FieldSetpointOverrideLSB, incomfort.FieldSetpointOverrideMSB, &s.SetpointOverrideC},
	}

	for _, p := range pairs {
		lsb, err := field(raw, p.lsb)
		if err != nil {
			return incomfort.HeaterSnapshot{}, err
		}
		msb, err := field(raw, p.msb)
		if err != nil {
			return incomfort.HeaterSnapshot{}, err
		}
		v, err := DecodePair(lsb, msb)
		if err != nil {
			return incomfort.HeaterSnapshot{}, withField(err, p.lsb, p.msb)
		}
		*p.dst = v
	}

	code, err := byteField(raw, incomfort.FieldDisplayCode)
	if err != nil {
		return incomfort.HeaterSnapshot{}, err
	}
	io, err := byteField(raw, incomfort.FieldIO)
	if err != nil {
		return incomfort.HeaterSnapshot{}, err
	}

	s.Display = DecodeDisplayCode(code)
	f := DecodeFlags(io)
	s.Burning = f.Burning
	s.Lockout = f.Lockout
	s.Pumping = f.Pumping
	s.Tapping = f.Tapping
	return s, nil
}

func field(raw incomfort.RawStatus, name string) (int, error) {
	v, ok := raw[name]
	if !ok {
		return 0, &incomfort.ProtocolError{Op: opDecodeStatus, Field: name}
	}
	return v, nil
}

func byteField(raw incomfort.RawStatus, name string) (int, error) {
	v, err := field(raw, name)
	if err != nil {
		return 0, err
	}
	if err := checkByte(opDecodeStatus+" "+name, v); err != nil {
		return 0, err
	}
	return v, nil
}

// withField names the offending pair in a DomainError from DecodePair.
func withField(err error, lsb, msb string) error {
	de, ok := err.(*incomfort.DomainError)
	if !ok {
		return err
	}
	return &incomfort.DomainError{
		Op:     opDecodeStatus + " " + lsb + "/" + msb,
		Value:  de.Value,
		Reason: de.Reason,
	}
}
