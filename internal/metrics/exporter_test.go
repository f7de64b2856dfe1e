package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"incomfort"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func sampleState() incomfort.HeaterState {
	return incomfort.HeaterState{
		Heater: 1,
		HeaterSnapshot: incomfort.HeaterSnapshot{
			PressureBar:       1.5,
			HeaterTempC:       64.6,
			TapTempC:          20,
			RoomTempC:         21.24,
			SetpointC:         21,
			SetpointOverrideC: 0,
			Display:           incomfort.CentralHeating,
			Burning:           true,
			Pumping:           true,
		},
		UpdatedAt: time.Unix(1700000000, 0).UTC(),
	}
}

func TestExporter_Observe(t *testing.T) {
	e := NewExporter()
	e.Observe(sampleState())

	if got := testutil.ToFloat64(e.pressure.WithLabelValues("1")); got != 1.5 {
		t.Errorf("pressure=%v, want 1.5", got)
	}
	if got := testutil.ToFloat64(e.temperature.WithLabelValues("1", "room")); got != 21.24 {
		t.Errorf("room temperature=%v, want 21.24", got)
	}
	if got := testutil.ToFloat64(e.display.WithLabelValues("1", "central heating")); got != 1 {
		t.Errorf("display central heating=%v, want 1", got)
	}
	if got := testutil.ToFloat64(e.display.WithLabelValues("1", "standby")); got != 0 {
		t.Errorf("display standby=%v, want 0", got)
	}
	if got := testutil.ToFloat64(e.flag.WithLabelValues("1", "burning")); got != 1 {
		t.Errorf("burning=%v, want 1", got)
	}
	if got := testutil.ToFloat64(e.flag.WithLabelValues("1", "lockout")); got != 0 {
		t.Errorf("lockout=%v, want 0", got)
	}
	if got := testutil.ToFloat64(e.lastUpdate.WithLabelValues("1")); got != 1700000000 {
		t.Errorf("last update=%v", got)
	}
}

func TestExporter_DisplayMovesWithState(t *testing.T) {
	e := NewExporter()
	st := sampleState()
	e.Observe(st)

	st.Display = incomfort.Standby
	e.Observe(st)

	if got := testutil.ToFloat64(e.display.WithLabelValues("1", "central heating")); got != 0 {
		t.Errorf("old display state still set: %v", got)
	}
	if got := testutil.ToFloat64(e.display.WithLabelValues("1", "standby")); got != 1 {
		t.Errorf("new display state not set: %v", got)
	}
	// one series per known state plus unknown
	if n := testutil.CollectAndCount(e.display); n != len(incomfort.DisplayStates())+1 {
		t.Errorf("display series=%d", n)
	}
}

func TestExporter_PressureExposition(t *testing.T) {
	e := NewExporter()
	e.Observe(sampleState())

	want := `
# HELP incomfort_pressure_bar Central heating water pressure (bar).
# TYPE incomfort_pressure_bar gauge
incomfort_pressure_bar{heater="1"} 1.5
`
	if err := testutil.CollectAndCompare(e.pressure, strings.NewReader(want)); err != nil {
		t.Fatal(err)
	}
}

func TestExporter_CountError(t *testing.T) {
	e := NewExporter()
	e.CountError("refresh")
	e.CountError("refresh")
	e.CountError("cache_save")

	if got := testutil.ToFloat64(e.errors.WithLabelValues("refresh")); got != 2 {
		t.Errorf("refresh errors=%v, want 2", got)
	}
}

func TestExporter_Handler(t *testing.T) {
	e := NewExporter()
	e.Observe(sampleState())

	rec := httptest.NewRecorder()
	e.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	if rec.Code != 200 || !strings.Contains(body, `incomfort_temperature_celsius{heater="1",sensor="heater"} 64.6`) {
		t.Fatalf("unexpected exposition (code %d):\n%s", rec.Code, body)
	}
}
