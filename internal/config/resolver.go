package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"incomfort/internal/gateway"
)

const (
	SystemGatewayFile = "/etc/incomfort-gateway"
	userGatewayFile   = ".incomfort-gateway"

	gatewayPrompt = "Type the IP of the LAN2RF gateway: "
)

// ErrNoGateway means no source named a gateway and prompting was not allowed.
var ErrNoGateway = errors.New("no gateway configured")

// Resolver finds the gateway address. Sources are tried in order: the
// explicit host, the system file, the user file, then the operator.
type Resolver struct {
	Host        string
	SystemFile  string
	UserFile    string
	Interactive bool

	In  io.Reader
	Out io.Writer
}

var _ gateway.EndpointResolver = (*Resolver)(nil)

// NewResolver returns a resolver using the standard file locations and the terminal.
func NewResolver(host string, interactive bool) *Resolver {
	r := &Resolver{
		Host:        host,
		SystemFile:  SystemGatewayFile,
		Interactive: interactive,
		In:          os.Stdin,
		Out:         os.Stdout,
	}
	if home, err := os.UserHomeDir(); err == nil {
		r.UserFile = filepath.Join(home, userGatewayFile)
	}
	return r
}

func (r *Resolver) ResolveEndpoint() (gateway.Endpoint, error) {
	if h := strings.TrimSpace(r.Host); h != "" {
		return gateway.Endpoint(h), nil
	}
	for _, path := range []string{r.SystemFile, r.UserFile} {
		h, err := readHostFile(path)
		if err != nil {
			return "", err
		}
		if h != "" {
			return gateway.Endpoint(h), nil
		}
	}
	if !r.Interactive {
		return "", ErrNoGateway
	}
	return r.prompt()
}

// readHostFile returns "" for a missing or blank file.
func readHostFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read gateway file %s: %w", path, err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (r *Resolver) prompt() (gateway.Endpoint, error) {
	fmt.Fprint(r.Out, gatewayPrompt)
	line, err := bufio.NewReader(r.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read gateway address: %w", err)
	}
	host := strings.TrimSpace(line)
	if host == "" {
		return "", ErrNoGateway
	}

	if r.UserFile != "" {
		if err := os.WriteFile(r.UserFile, []byte(host), 0o644); err != nil {
			return "", fmt.Errorf("store gateway address: %w", err)
		}
		fmt.Fprintf(r.Out, " (stored in %s)\n", r.UserFile)
	}
	return gateway.Endpoint(host), nil
}
