package service

import (
	"context"
	"time"

	"incomfort"
)

// Run polls on every tick until ctx is canceled, starting right away unless
// Open has already listed the heaters.
// A failed refresh keeps the stale state and is handed to the error handler.
func (s *HeaterService) Run(ctx context.Context, tick time.Duration) {
	s.ioMu.Lock()
	listed := s.listed
	s.ioMu.Unlock()
	if !listed {
		s.PollOnce(ctx)
	}

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.PollOnce(ctx)
		}
	}
}

// PollOnce refreshes every present heater. Until the heater list has been
// read once it retries the listing instead.
func (s *HeaterService) PollOnce(ctx context.Context) {
	s.ioMu.Lock()
	states := s.pollLocked(ctx)
	s.ioMu.Unlock()
	s.notify(states...)
}

func (s *HeaterService) pollLocked(ctx context.Context) []incomfort.HeaterState {
	if ctx.Err() != nil {
		return nil
	}
	if !s.listed {
		_, states, err := s.openLocked(ctx)
		if err != nil {
			s.onError("list_heaters", -1, err)
		}
		return states
	}

	var states []incomfort.HeaterState
	for _, h := range s.present {
		if ctx.Err() != nil {
			break
		}
		sess, ok := s.sessions[h]
		if !ok {
			var err error
			if sess, err = NewHeaterSession(ctx, s.gw, h); err != nil {
				s.onError("open_session", h, err)
				continue
			}
			s.sessions[h] = sess
		} else if err := sess.Refresh(ctx); err != nil {
			s.onError("refresh", h, err)
			continue
		}
		states = append(states, s.commit(ctx, sess.State()))
	}
	return states
}
