package handlers

import (
	"context"
	"net/http"

	"incomfort"
	"incomfort/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	genTokenToken string
	genTokenErr   error
	parseSubject  string
	parseErr      error

	lastGenUsername string
	lastGenPassword string
	lastParseToken  string
}

func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseSubject, m.parseErr
}

type mockControl struct {
	state        incomfort.HeaterState
	refreshErr   error
	setpointErr  error
	refreshCalls int
	lastHeater   int
	lastSetpoint float64
}

func (m *mockControl) Refresh(ctx context.Context, heater int) (incomfort.HeaterState, error) {
	m.refreshCalls++
	m.lastHeater = heater
	if m.refreshErr != nil {
		return incomfort.HeaterState{}, m.refreshErr
	}
	return m.state, nil
}
func (m *mockControl) SetSetpoint(ctx context.Context, heater int, celsius float64) (incomfort.HeaterState, error) {
	m.lastHeater = heater
	m.lastSetpoint = celsius
	if m.setpointErr != nil {
		return incomfort.HeaterState{}, m.setpointErr
	}
	return m.state, nil
}

type mockMonitoring struct {
	states     map[int]incomfort.HeaterState
	err        error
	listErr    error
	lastHeater int
}

func (m *mockMonitoring) GetState(ctx context.Context, heater int) (incomfort.HeaterState, error) {
	m.lastHeater = heater
	if m.err != nil {
		return incomfort.HeaterState{}, m.err
	}
	st, ok := m.states[heater]
	if !ok {
		return incomfort.HeaterState{}, service.ErrUnknownHeater
	}
	return st, nil
}
func (m *mockMonitoring) ListStates(ctx context.Context) ([]incomfort.HeaterState, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []incomfort.HeaterState
	for h := 0; h < 8; h++ {
		if st, ok := m.states[h]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}

// ---- Shared Test Helpers ----

func sampleState(heater int) incomfort.HeaterState {
	return incomfort.HeaterState{
		Heater: heater,
		HeaterSnapshot: incomfort.HeaterSnapshot{
			PressureBar: 1.5,
			HeaterTempC: 64.6,
			TapTempC:    20,
			RoomTempC:   21.24,
			SetpointC:   21,
			Display:     incomfort.CentralHeating,
			Burning:     true,
		},
	}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
