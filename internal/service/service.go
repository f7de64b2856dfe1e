package service

import (
	"context"
	"time"

	"incomfort"
	"incomfort/internal/repository"
)

type Authorization interface {
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (string, error)
}

// Control exposes the operations that talk to the gateway.
type Control interface {
	Refresh(ctx context.Context, heater int) (incomfort.HeaterState, error)
	SetSetpoint(ctx context.Context, heater int, celsius float64) (incomfort.HeaterState, error)
}

// Monitoring exposes the last known state without touching the gateway.
type Monitoring interface {
	GetState(ctx context.Context, heater int) (incomfort.HeaterState, error)
	ListStates(ctx context.Context) ([]incomfort.HeaterState, error)
}

// Poller discovers heaters and keeps their state fresh.
type Poller interface {
	Open(ctx context.Context) ([]int, error)
	Run(ctx context.Context, tick time.Duration)
}

// Observer receives every state produced by a successful poll or write.
// Observe is called without the gateway lock held and may run concurrently
// for different states.
type Observer interface {
	Observe(st incomfort.HeaterState)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(st incomfort.HeaterState)

func (f ObserverFunc) Observe(st incomfort.HeaterState) { f(st) }

// ErrorHandler is told about failures that do not reach a caller:
// background polls and cache writes.
type ErrorHandler func(op string, heater int, err error)

type Service struct {
	Control
	Monitoring
	Poller
	Authorization
}

// Options configures NewService. A nil Auth leaves Authorization unset.
type Options struct {
	Auth      *AuthSettings
	Observers []Observer
	OnError   ErrorHandler
}

// NewService wires the gateway and repository layer into concrete services.
func NewService(gw Gateway, repos *repository.Repository, opts Options) *Service {
	heaters := NewHeaterService(gw, repos.Snapshots, opts.OnError, opts.Observers...)
	svc := &Service{
		Control:    heaters,
		Monitoring: heaters,
		Poller:     heaters,
	}
	if opts.Auth != nil {
		svc.Authorization = NewAuthService(*opts.Auth)
	}
	return svc
}
