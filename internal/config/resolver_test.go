package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestResolver(t *testing.T) (*Resolver, string) {
	t.Helper()
	dir := t.TempDir()
	return &Resolver{
		SystemFile: filepath.Join(dir, "etc-incomfort-gateway"),
		UserFile:   filepath.Join(dir, "home-incomfort-gateway"),
		In:         strings.NewReader(""),
		Out:        &bytes.Buffer{},
	}, dir
}

func TestResolver_Order(t *testing.T) {
	r, dir := newTestResolver(t)
	writeFile(t, dir, "etc-incomfort-gateway", " 10.0.0.1 \n")
	writeFile(t, dir, "home-incomfort-gateway", "10.0.0.2")

	r.Host = "10.0.0.9:8080"
	if ep, err := r.ResolveEndpoint(); err != nil || ep != "10.0.0.9:8080" {
		t.Fatalf("explicit host: ep=%q err=%v", ep, err)
	}

	r.Host = ""
	if ep, err := r.ResolveEndpoint(); err != nil || ep != "10.0.0.1" {
		t.Fatalf("system file: ep=%q err=%v", ep, err)
	}

	if err := os.Remove(r.SystemFile); err != nil {
		t.Fatal(err)
	}
	if ep, err := r.ResolveEndpoint(); err != nil || ep != "10.0.0.2" {
		t.Fatalf("user file: ep=%q err=%v", ep, err)
	}
}

func TestResolver_BlankFileFallsThrough(t *testing.T) {
	r, dir := newTestResolver(t)
	writeFile(t, dir, "etc-incomfort-gateway", "\n")
	writeFile(t, dir, "home-incomfort-gateway", "gw.local")

	if ep, err := r.ResolveEndpoint(); err != nil || ep != "gw.local" {
		t.Fatalf("ep=%q err=%v", ep, err)
	}
}

func TestResolver_NonInteractive(t *testing.T) {
	r, _ := newTestResolver(t)
	if _, err := r.ResolveEndpoint(); !errors.Is(err, ErrNoGateway) {
		t.Fatalf("err=%v, want ErrNoGateway", err)
	}
	if out := r.Out.(*bytes.Buffer).String(); out != "" {
		t.Fatalf("non-interactive resolver wrote %q", out)
	}
}

func TestResolver_PromptPersists(t *testing.T) {
	r, _ := newTestResolver(t)
	r.Interactive = true
	r.In = strings.NewReader("192.168.0.7\n")

	ep, err := r.ResolveEndpoint()
	if err != nil || ep != "192.168.0.7" {
		t.Fatalf("ep=%q err=%v", ep, err)
	}
	want := "Type the IP of the LAN2RF gateway:  (stored in " + r.UserFile + ")\n"
	if out := r.Out.(*bytes.Buffer).String(); out != want {
		t.Fatalf("output %q, want %q", out, want)
	}
	b, err := os.ReadFile(r.UserFile)
	if err != nil || string(b) != "192.168.0.7" {
		t.Fatalf("user file=%q err=%v", b, err)
	}

	// The stored answer is used next time without prompting.
	r.In = strings.NewReader("")
	r.Out = &bytes.Buffer{}
	if ep, err := r.ResolveEndpoint(); err != nil || ep != "192.168.0.7" {
		t.Fatalf("second resolve: ep=%q err=%v", ep, err)
	}
}

func TestResolver_PromptEmptyAnswer(t *testing.T) {
	r, _ := newTestResolver(t)
	r.Interactive = true
	r.In = strings.NewReader("\n")

	if _, err := r.ResolveEndpoint(); !errors.Is(err, ErrNoGateway) {
		t.Fatalf("err=%v, want ErrNoGateway", err)
	}
	if _, err := os.Stat(r.UserFile); !os.IsNotExist(err) {
		t.Fatalf("empty answer must not be stored")
	}
}

func TestResolver_UnreadableFile(t *testing.T) {
	r, dir := newTestResolver(t)
	// a directory in place of the file
	if err := os.Mkdir(filepath.Join(dir, "etc-incomfort-gateway"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ResolveEndpoint(); err == nil || errors.Is(err, ErrNoGateway) {
		t.Fatalf("expected read error, got %v", err)
	}
}
