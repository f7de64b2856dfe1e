package munin

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"incomfort"
)

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	err := Report(&buf, incomfort.HeaterSnapshot{
		PressureBar: 1.5,
		HeaterTempC: 64.6,
		TapTempC:    20,
		RoomTempC:   21.24,
		SetpointC:   21,
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	want := "multigraph incomfort_temp\n" +
		"heater.value 64.6\n" +
		"tap.value 20.0\n" +
		"\n" +
		"multigraph incomfort_room_temp\n" +
		"room.value 21.24\n" +
		"setpoint.value 21.0\n" +
		"\n" +
		"multigraph incomfort_pressure\n" +
		"pressure.value 1.5\n"
	if got := buf.String(); got != want {
		t.Fatalf("Report output:\n%s\nwant:\n%s", got, want)
	}
}

func TestConfig(t *testing.T) {
	var buf bytes.Buffer
	if err := Config(&buf); err != nil {
		t.Fatalf("Config: %v", err)
	}
	out := buf.String()
	for _, line := range []string{
		"graph_title incomfort temperatures",
		"graph_title incomfort room temperatures",
		"graph_title incomfort pressure",
		"graph_vlabel bar",
		"setpoint.label setpoint",
	} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("config output lacks %q", line)
		}
	}
	if strings.Count(out, "multigraph ") != 3 || strings.Count(out, "\n\n") != 2 {
		t.Errorf("unexpected graph layout:\n%s", out)
	}
}

func TestAutoconf(t *testing.T) {
	var buf bytes.Buffer
	if err := Autoconf(&buf); err != nil || buf.String() != "yes\n" {
		t.Fatalf("Autoconf wrote %q, err=%v", buf.String(), err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteErrors(t *testing.T) {
	if Report(failingWriter{}, incomfort.HeaterSnapshot{}) == nil {
		t.Errorf("Report ignored write error")
	}
	if Config(failingWriter{}) == nil || Autoconf(failingWriter{}) == nil {
		t.Errorf("write error ignored")
	}
}
