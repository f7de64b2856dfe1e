package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"incomfort/internal/config"
	"incomfort/internal/logger"

	"github.com/gin-gonic/gin"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, url := startGateway(t)
	port := freePort(t)

	a := &app{
		cfg: &config.Config{
			Gateway: config.GatewayConfig{Host: url, Timeout: 2 * time.Second},
			Log:     config.LogConfig{Level: logger.ErrorLevel},
			HTTP:    config.HTTPConfig{Port: port},
			DB:      config.DBConfig{Path: filepath.Join(t.TempDir(), "cache.db")},
			Poll:    config.PollConfig{Interval: time.Hour},
		},
		log: logger.Nop(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx) }()

	base := "http://127.0.0.1:" + strconv.Itoa(port)
	var resp *http.Response
	var err error
	for deadline := time.Now().Add(5 * time.Second); time.Now().Before(deadline); time.Sleep(50 * time.Millisecond) {
		if resp, err = http.Get(base + "/api/v1/heaters/2"); err == nil {
			break
		}
	}
	if err != nil {
		cancel()
		t.Fatalf("server never came up: %v", err)
	}
	var body struct {
		Heater      int     `json:"heater"`
		PressureBar float64 `json:"pressure_bar"`
	}
	decErr := json.NewDecoder(resp.Body).Decode(&body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || decErr != nil {
		t.Fatalf("GET heater 2: status %d, decode %v", resp.StatusCode, decErr)
	}
	if body.Heater != 2 || body.PressureBar != 0.5 {
		t.Fatalf("unexpected state %+v", body)
	}

	metrics, err := http.Get(base + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	metrics.Body.Close()
	if metrics.StatusCode != http.StatusOK {
		t.Fatalf("/metrics status %d", metrics.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatalf("serve did not stop")
	}
}

// lingeringPoller keeps working for a while after its context is canceled,
// like a PollOnce still writing to the cache.
type lingeringPoller struct {
	finished atomic.Bool
}

func (p *lingeringPoller) Open(context.Context) ([]int, error) { return nil, nil }

func (p *lingeringPoller) Run(ctx context.Context, _ time.Duration) {
	<-ctx.Done()
	time.Sleep(50 * time.Millisecond)
	p.finished.Store(true)
}

func TestStartPollerDoneAfterRunReturns(t *testing.T) {
	p := &lingeringPoller{}
	ctx, cancel := context.WithCancel(context.Background())
	done := startPoller(ctx, p, time.Hour)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("poller never finished")
	}
	if !p.finished.Load() {
		t.Fatalf("done closed before Run returned")
	}
}
