package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"incomfort"
	"incomfort/internal/repository"
)

// ErrUnknownHeater is returned when neither a live session nor a cached snapshot exists.
var ErrUnknownHeater = errors.New("unknown heater")

// HeaterService owns one session per heater and the last good state of each.
// Gateway calls are serialized by ioMu; reads of states never wait on the network.
type HeaterService struct {
	gw        Gateway
	snapshots repository.SnapshotRepo
	observers []Observer
	onError   ErrorHandler

	ioMu     sync.Mutex
	listed   bool
	present  []int
	sessions map[int]*HeaterSession

	stateMu sync.RWMutex
	states  map[int]incomfort.HeaterState
}

func NewHeaterService(gw Gateway, snapshots repository.SnapshotRepo, onError ErrorHandler, observers ...Observer) *HeaterService {
	if onError == nil {
		onError = func(string, int, error) {}
	}
	return &HeaterService{
		gw:        gw,
		snapshots: snapshots,
		observers: observers,
		onError:   onError,
		sessions:  make(map[int]*HeaterSession),
		states:    make(map[int]incomfort.HeaterState),
	}
}

// Open lists present heaters and opens a session for each one.
// Heaters whose first poll fails are reported through the error handler and retried by the poller.
func (s *HeaterService) Open(ctx context.Context) ([]int, error) {
	s.ioMu.Lock()
	opened, states, err := s.openLocked(ctx)
	s.ioMu.Unlock()
	s.notify(states...)
	return opened, err
}

func (s *HeaterService) openLocked(ctx context.Context) ([]int, []incomfort.HeaterState, error) {
	present, err := ListPresentHeaters(ctx, s.gw)
	if err != nil {
		return nil, nil, err
	}
	s.listed = true
	s.present = present

	var (
		opened []int
		states []incomfort.HeaterState
	)
	for _, h := range present {
		if _, ok := s.sessions[h]; ok {
			opened = append(opened, h)
			continue
		}
		sess, err := NewHeaterSession(ctx, s.gw, h)
		if err != nil {
			s.onError("open_session", h, err)
			continue
		}
		s.sessions[h] = sess
		states = append(states, s.commit(ctx, sess.State()))
		opened = append(opened, h)
	}
	return opened, states, nil
}

// Refresh polls one heater, opening its session on first use.
func (s *HeaterService) Refresh(ctx context.Context, heater int) (incomfort.HeaterState, error) {
	s.ioMu.Lock()
	st, err := s.refreshLocked(ctx, heater)
	s.ioMu.Unlock()
	if err != nil {
		return incomfort.HeaterState{}, err
	}
	s.notify(st)
	return st, nil
}

func (s *HeaterService) refreshLocked(ctx context.Context, heater int) (incomfort.HeaterState, error) {
	sess, ok := s.sessions[heater]
	if !ok {
		var err error
		if sess, err = NewHeaterSession(ctx, s.gw, heater); err != nil {
			return incomfort.HeaterState{}, err
		}
		s.sessions[heater] = sess
	} else if err := sess.Refresh(ctx); err != nil {
		return incomfort.HeaterState{}, err
	}
	return s.commit(ctx, sess.State()), nil
}

// SetSetpoint writes a setpoint and returns the state echoed by the gateway.
func (s *HeaterService) SetSetpoint(ctx context.Context, heater int, celsius float64) (incomfort.HeaterState, error) {
	s.ioMu.Lock()
	st, err := s.setSetpointLocked(ctx, heater, celsius)
	s.ioMu.Unlock()
	if err != nil {
		return incomfort.HeaterState{}, err
	}
	s.notify(st)
	return st, nil
}

func (s *HeaterService) setSetpointLocked(ctx context.Context, heater int, celsius float64) (incomfort.HeaterState, error) {
	sess, ok := s.sessions[heater]
	if !ok {
		var err error
		if sess, err = NewHeaterSession(ctx, s.gw, heater); err != nil {
			return incomfort.HeaterState{}, err
		}
		s.sessions[heater] = sess
	}
	if err := sess.SetSetpoint(ctx, celsius); err != nil {
		return incomfort.HeaterState{}, err
	}
	return s.commit(ctx, sess.State()), nil
}

// commit records st as the heater's last good state and caches it.
// A cache failure is reported, not returned: the gateway already holds the new state.
func (s *HeaterService) commit(ctx context.Context, st incomfort.HeaterState) incomfort.HeaterState {
	s.stateMu.Lock()
	s.states[st.Heater] = st
	s.stateMu.Unlock()

	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, st); err != nil {
			s.onError("cache_save", st.Heater, err)
		}
	}
	return st
}

// notify hands states to the observers. It runs without ioMu so a slow
// observer never holds up gateway calls.
func (s *HeaterService) notify(states ...incomfort.HeaterState) {
	for _, st := range states {
		for _, o := range s.observers {
			o.Observe(st)
		}
	}
}

func (s *HeaterService) liveState(heater int) (incomfort.HeaterState, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	st, ok := s.states[heater]
	return st, ok
}

func (s *HeaterService) liveStates() []incomfort.HeaterState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]incomfort.HeaterState, 0, len(s.states))
	for _, st := range s.states {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Heater < out[j].Heater })
	return out
}
