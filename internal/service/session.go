package service

import (
	"context"
	"math"
	"time"

	"incomfort"
	"incomfort/internal/wire"
)

// Gateway is the subset of gateway.Client a session needs.
type Gateway interface {
	ListHeaters(ctx context.Context) ([]bool, error)
	FetchStatus(ctx context.Context, heater int) (incomfort.RawStatus, error)
	WriteSetpoint(ctx context.Context, heater int, encoded int) (incomfort.RawStatus, error)
}

// HeaterSession holds the latest snapshot of one heater.
// A session is meant for a single caller; HeaterService serializes shared use.
type HeaterSession struct {
	gw        Gateway
	heater    int
	snapshot  incomfort.HeaterSnapshot
	updatedAt time.Time
	now       func() time.Time
}

// NewHeaterSession performs the first poll; no session exists without a snapshot.
func NewHeaterSession(ctx context.Context, gw Gateway, heater int) (*HeaterSession, error) {
	s := &HeaterSession{gw: gw, heater: heater, now: time.Now}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh polls the gateway. On error the previous snapshot is kept.
func (s *HeaterSession) Refresh(ctx context.Context) error {
	raw, err := s.gw.FetchStatus(ctx, s.heater)
	if err != nil {
		return err
	}
	return s.replace(raw)
}

// SetSetpoint writes celsius (silently clamped to 5..30) and resyncs from the
// status the gateway returns, not from the requested value.
func (s *HeaterSession) SetSetpoint(ctx context.Context, celsius float64) error {
	if math.IsNaN(celsius) {
		return &incomfort.DomainError{Op: "set setpoint", Value: celsius, Reason: "not a number"}
	}
	raw, err := s.gw.WriteSetpoint(ctx, s.heater, wire.EncodeSetpoint(celsius))
	if err != nil {
		return err
	}
	return s.replace(raw)
}

func (s *HeaterSession) replace(raw incomfort.RawStatus) error {
	snap, err := wire.DecodeSnapshot(raw)
	if err != nil {
		return err
	}
	s.snapshot = snap
	s.updatedAt = s.now().UTC()
	return nil
}

func (s *HeaterSession) Heater() int {
	return s.heater
}

func (s *HeaterSession) Snapshot() incomfort.HeaterSnapshot {
	return s.snapshot
}

func (s *HeaterSession) UpdatedAt() time.Time {
	return s.updatedAt
}

// State returns the snapshot tagged with heater index and poll time.
func (s *HeaterSession) State() incomfort.HeaterState {
	return incomfort.HeaterState{
		Heater:         s.heater,
		HeaterSnapshot: s.snapshot,
		UpdatedAt:      s.updatedAt,
	}
}

func (s *HeaterSession) Pressure() float64 {
	return s.snapshot.PressureBar
}

func (s *HeaterSession) HeaterTemp() float64 {
	return s.snapshot.HeaterTempC
}

func (s *HeaterSession) TapTemp() float64 {
	return s.snapshot.TapTempC
}

func (s *HeaterSession) RoomTemp() float64 {
	return s.snapshot.RoomTempC
}

func (s *HeaterSession) Setpoint() float64 {
	return s.snapshot.SetpointC
}

func (s *HeaterSession) SetpointOverride() float64 {
	return s.snapshot.SetpointOverrideC
}

func (s *HeaterSession) DisplayCode() incomfort.DisplayState {
	return s.snapshot.Display
}

func (s *HeaterSession) Burning() bool {
	return s.snapshot.Burning
}

func (s *HeaterSession) Pumping() bool {
	return s.snapshot.Pumping
}

func (s *HeaterSession) Tapping() bool {
	return s.snapshot.Tapping
}

func (s *HeaterSession) Lockout() bool {
	return s.snapshot.Lockout
}

// Error reports the lockout bit; the gateway has no separate error flag.
func (s *HeaterSession) Error() bool {
	return s.snapshot.Lockout
}

// ListPresentHeaters returns the indices of occupied heater slots.
func ListPresentHeaters(ctx context.Context, gw Gateway) ([]int, error) {
	slots, err := gw.ListHeaters(ctx)
	if err != nil {
		return nil, err
	}
	var out []int
	for i, present := range slots {
		if present {
			out = append(out, i)
		}
	}
	return out, nil
}

// OpenSessions opens one session per present heater, failing on the first error.
func OpenSessions(ctx context.Context, gw Gateway) ([]*HeaterSession, error) {
	heaters, err := ListPresentHeaters(ctx, gw)
	if err != nil {
		return nil, err
	}
	sessions := make([]*HeaterSession, 0, len(heaters))
	for _, h := range heaters {
		s, err := NewHeaterSession(ctx, gw, h)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
