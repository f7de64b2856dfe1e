package incomfort

// RawStatus is the data.json object as received from the gateway.
// Only integer members are kept.
type RawStatus map[string]int

// Field names used by the gateway firmware.
const (
	FieldPressureLSB         = "ch_pressure_lsb"
	FieldPressureMSB         = "ch_pressure_msb"
	FieldHeaterTempLSB       = "ch_temp_lsb"
	FieldHeaterTempMSB       = "ch_temp_msb"
	FieldTapTempLSB          = "tap_temp_lsb"
	FieldTapTempMSB          = "tap_temp_msb"
	FieldRoomTempLSB         = "room_temp_1_lsb"
	FieldRoomTempMSB         = "room_temp_1_msb"
	FieldSetpointLSB         = "room_temp_set_1_lsb"
	FieldSetpointMSB         = "room_temp_set_1_msb"
	FieldSetpointOverrideLSB = "room_set_ovr_1_lsb"
	FieldSetpointOverrideMSB = "room_set_ovr_1_msb"
	FieldDisplayCode         = "displ_code"
	FieldIO                  = "IO"
)

// StatusFields lists the members a snapshot is decoded from, in decode order.
var StatusFields = []string{
	FieldPressureLSB, FieldPressureMSB,
	FieldHeaterTempLSB, FieldHeaterTempMSB,
	FieldTapTempLSB, FieldTapTempMSB,
	FieldRoomTempLSB, FieldRoomTempMSB,
	FieldSetpointLSB, FieldSetpointMSB,
	FieldSetpointOverrideLSB, FieldSetpointOverrideMSB,
	FieldDisplayCode, FieldIO,
}
