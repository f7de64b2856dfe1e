package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(WarnLevel, &buf)

	log.Infow("dropped")
	log.Warnw("kept", "heater", 0)
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "kept") || !strings.Contains(out, `"heater": 0`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("chatty", &buf)

	log.Debug("hidden")
	log.Info("shown")
	_ = log.Sync()

	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestForHeater(t *testing.T) {
	var buf bytes.Buffer
	New(DebugLevel, &buf).ForHeater(2).Debug("poll")

	if out := buf.String(); !strings.Contains(out, `"heater": 2`) {
		t.Fatalf("missing heater field in %q", out)
	}
}

func TestValidLevel(t *testing.T) {
	for _, lvl := range []string{DebugLevel, InfoLevel, WarnLevel, ErrorLevel} {
		if err := ValidLevel(lvl); err != nil {
			t.Errorf("ValidLevel(%q) = %v", lvl, err)
		}
	}
	if err := ValidLevel("trace"); err == nil {
		t.Errorf("ValidLevel(trace) = nil")
	}
}
