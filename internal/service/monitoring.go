package service

import (
	"context"
	"sort"

	"incomfort"
)

// GetState returns the live state of a heater, falling back to the cached
// snapshot when no poll has succeeded since start-up.
func (s *HeaterService) GetState(ctx context.Context, heater int) (incomfort.HeaterState, error) {
	if st, ok := s.liveState(heater); ok {
		return st, nil
	}
	if s.snapshots == nil {
		return incomfort.HeaterState{}, ErrUnknownHeater
	}
	st, err := s.snapshots.Load(ctx, heater)
	if err != nil {
		return incomfort.HeaterState{}, err
	}
	if st.UpdatedAt.IsZero() {
		return incomfort.HeaterState{}, ErrUnknownHeater
	}
	return st, nil
}

// ListStates merges live states over cached ones, ordered by heater.
func (s *HeaterService) ListStates(ctx context.Context) ([]incomfort.HeaterState, error) {
	live := s.liveStates()
	if s.snapshots == nil {
		return live, nil
	}
	cached, err := s.snapshots.List(ctx)
	if err != nil {
		return nil, err
	}

	byHeater := make(map[int]incomfort.HeaterState, len(cached)+len(live))
	for _, st := range cached {
		byHeater[st.Heater] = st
	}
	for _, st := range live {
		byHeater[st.Heater] = st
	}
	out := make([]incomfort.HeaterState, 0, len(byHeater))
	for _, st := range byHeater {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Heater < out[j].Heater })
	return out, nil
}
