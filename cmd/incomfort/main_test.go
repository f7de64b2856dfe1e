package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

const statusBody = `{"nodenr":200,"ch_temp_lsb":60,"ch_temp_msb":25,"tap_temp_lsb":208,"tap_temp_msb":7,
"ch_pressure_lsb":50,"ch_pressure_msb":0,"room_temp_1_lsb":76,"room_temp_1_msb":8,
"room_temp_set_1_lsb":52,"room_temp_set_1_msb":8,"room_set_ovr_1_lsb":0,"room_set_ovr_1_msb":0,
"displ_code":102,"IO":8}`

const wantSummary = `Pressure     0.5
Heater temp. 64.6
Tap temp.    20.0
Display code central heating
Room temp.   21.24
Setpoint     21.0
Stpt. ovrd.  0.0

Burning?     True
Pumping?     False
Tapping?     False
Error?       False
`

type fakeGateway struct {
	mu   sync.Mutex
	uris []string
}

func (f *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.uris = append(f.uris, r.URL.RequestURI())
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/heaterlist.json":
		_, _ = io.WriteString(w, `{"heaterlist":["1703f00012",null,"1703f00013",null]}`)
	case "/data.json":
		_, _ = io.WriteString(w, statusBody)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeGateway) requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.uris...)
}

func startGateway(t *testing.T) (*fakeGateway, string) {
	t.Helper()
	fg := &fakeGateway{}
	srv := httptest.NewServer(fg)
	t.Cleanup(srv.Close)
	return fg, srv.URL
}

// run executes the CLI with args and returns what it printed on stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSummary(t *testing.T) {
	_, url := startGateway(t)

	got, err := run(t, "", "--gateway", url)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != wantSummary {
		t.Fatalf("summary mismatch\n got: %q\nwant: %q", got, wantSummary)
	}
}

func TestFieldCommands(t *testing.T) {
	_, url := startGateway(t)

	tests := []struct {
		cmd  string
		want string
	}{
		{"pressure", "0.5"},
		{"heater_temp", "64.6"},
		{"tap_temp", "20.0"},
		{"display_code", "central heating"},
		{"room_temp", "21.24"},
		{"setpoint", "21.0"},
		{"setpoint_override", "0.0"},
		{"burning", "1"},
		{"pumping", "0"},
		{"tapping", "0"},
		{"lockout", "0"},
		{"error", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			got, err := run(t, "", "--gateway", url, tt.cmd)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if got != tt.want+"\n" {
				t.Fatalf("%s printed %q, want %q", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestFieldCommandUsesHeaterFlag(t *testing.T) {
	fg, url := startGateway(t)

	if _, err := run(t, "", "--gateway", url, "--heater", "2", "pressure"); err != nil {
		t.Fatalf("run: %v", err)
	}
	reqs := fg.requests()
	if len(reqs) != 1 || reqs[0] != "/data.json?heater=2" {
		t.Fatalf("requests=%v", reqs)
	}
}

func TestSet(t *testing.T) {
	fg, url := startGateway(t)

	got, err := run(t, "", "--gateway", url, "set", "19.5")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != wantSummary {
		t.Fatalf("set should print the summary echoed by the gateway, got %q", got)
	}
	reqs := fg.requests()
	want := "/data.json?heater=0&thermostat=0&setpoint=145"
	if len(reqs) != 2 || reqs[1] != want {
		t.Fatalf("requests=%v, want last %q", reqs, want)
	}
}

func TestSetClampsOutOfRange(t *testing.T) {
	fg, url := startGateway(t)

	if _, err := run(t, "", "--gateway", url, "set", "99"); err != nil {
		t.Fatalf("run: %v", err)
	}
	reqs := fg.requests()
	if got := reqs[len(reqs)-1]; got != "/data.json?heater=0&thermostat=0&setpoint=250" {
		t.Fatalf("last request=%q", got)
	}
}

func TestSetRejectsBadInput(t *testing.T) {
	fg, url := startGateway(t)

	for _, arg := range []string{"warm", "NaN"} {
		if _, err := run(t, "", "--gateway", url, "set", arg); err == nil {
			t.Fatalf("set %q: expected error", arg)
		}
	}
	for _, uri := range fg.requests() {
		if strings.Contains(uri, "setpoint=") {
			t.Fatalf("a setpoint was written: %q", uri)
		}
	}
}

func TestHeaters(t *testing.T) {
	_, url := startGateway(t)

	got, err := run(t, "", "--gateway", url, "heaters")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != "0\n2\n" {
		t.Fatalf("heaters printed %q", got)
	}
}

func TestMunin(t *testing.T) {
	_, url := startGateway(t)

	got, err := run(t, "", "--gateway", url, "munin")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "multigraph incomfort_temp\nheater.value 64.6\ntap.value 20.0\n\n" +
		"multigraph incomfort_room_temp\nroom.value 21.24\nsetpoint.value 21.0\n\n" +
		"multigraph incomfort_pressure\npressure.value 0.5\n"
	if got != want {
		t.Fatalf("munin report mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestMuninConfigAndAutoconfNeedNoGateway(t *testing.T) {
	got, err := run(t, "", "munin", "autoconf")
	if err != nil || got != "yes\n" {
		t.Fatalf("autoconf: %q, %v", got, err)
	}

	got, err = run(t, "", "munin", "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.HasPrefix(got, "multigraph incomfort_temp\ngraph_title incomfort temperatures\n") {
		t.Fatalf("config output %q", got)
	}

	if _, err := run(t, "", "munin", "suggest"); err == nil {
		t.Fatalf("expected error for unknown munin argument")
	}
}

func TestUnreachableGatewayFails(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := run(t, "", "--gateway", url, "--timeout", "1s", "pressure"); err == nil {
		t.Fatalf("expected error for a closed gateway")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "--log-level", "verbose", "munin", "autoconf")
	if err == nil || !strings.Contains(err.Error(), "log.level") {
		t.Fatalf("expected log.level error, got %v", err)
	}
}

func TestHashPassword(t *testing.T) {
	got, err := run(t, "s3cr3t\n", "hash-password")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	hash := strings.TrimSpace(got)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cr3t")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}

	if _, err := run(t, "\n", "hash-password"); err == nil {
		t.Fatalf("expected error for an empty password")
	}
}
