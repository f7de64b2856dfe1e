// Package gateway talks to the LAN2RF gateway over its JSON-over-HTTP protocol.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"incomfort"
	"incomfort/internal/wire"
)

const (
	defaultTimeout = 5 * time.Second
	defaultPort    = "80"

	// maxBodyBytes caps a gateway response; data.json is well under 2 KB.
	maxBodyBytes = 64 << 10

	pathHeaterList = "/heaterlist.json"
	pathData       = "/data.json"
	keyHeaterList  = "heaterlist"
)

// Endpoint is the gateway host, optionally with a port.
type Endpoint string

// BaseURL returns the http URL for the endpoint, defaulting to port 80.
func (e Endpoint) BaseURL() string {
	host := strings.TrimSpace(string(e))
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimSuffix(host, "/")
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(strings.Trim(host, "[]"), defaultPort)
	}
	return "http://" + host
}

// EndpointResolver yields the gateway endpoint. It is consulted once, when a Client is built.
type EndpointResolver interface {
	ResolveEndpoint() (Endpoint, error)
}

// Static is an EndpointResolver for an already known endpoint.
type Static Endpoint

func (s Static) ResolveEndpoint() (Endpoint, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", errors.New("gateway: empty endpoint")
	}
	return Endpoint(s), nil
}

// Client issues the gateway's three operations. It performs no retries.
type Client struct {
	endpoint Endpoint
	baseURL  string
	http     *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// NewClient resolves the endpoint and builds a client bound to it.
func NewClient(resolver EndpointResolver, opts ...Option) (*Client, error) {
	ep, err := resolver.ResolveEndpoint()
	if err != nil {
		return nil, fmt.Errorf("resolve gateway endpoint: %w", err)
	}
	c := &Client{
		endpoint: ep,
		baseURL:  ep.BaseURL(),
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Endpoint() Endpoint { return c.endpoint }

// ListHeaters returns one presence flag per heater slot.
func (c *Client) ListHeaters(ctx context.Context) ([]bool, error) {
	const op = "list heaters"

	body, err := c.get(ctx, op, pathHeaterList)
	if err != nil {
		return nil, err
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &incomfort.ProtocolError{Op: op, Err: err}
	}
	rawList, ok := resp[keyHeaterList]
	if !ok {
		return nil, &incomfort.ProtocolError{Op: op, Field: keyHeaterList}
	}
	var slots []any
	if err := json.Unmarshal(rawList, &slots); err != nil || slots == nil {
		if err == nil {
			err = errors.New("not an array")
		}
		return nil, &incomfort.ProtocolError{Op: op, Field: keyHeaterList, Err: err}
	}

	present := make([]bool, len(slots))
	for i, v := range slots {
		present[i] = truthy(v)
	}
	return present, nil
}

// FetchStatus polls the current state of one heater.
func (c *Client) FetchStatus(ctx context.Context, heater int) (incomfort.RawStatus, error) {
	const op = "fetch status"
	if err := checkHeater(op, heater); err != nil {
		return nil, err
	}
	return c.status(ctx, op, pathData+"?heater="+strconv.Itoa(heater))
}

// WriteSetpoint sends an encoded setpoint and returns the status the gateway echoes.
func (c *Client) WriteSetpoint(ctx context.Context, heater int, encoded int) (incomfort.RawStatus, error) {
	const op = "write setpoint"
	if err := checkHeater(op, heater); err != nil {
		return nil, err
	}
	if encoded < 0 || encoded > wire.MaxEncodedSetpoint {
		return nil, &incomfort.DomainError{Op: op, Value: encoded, Reason: "encoded setpoint outside [0,250]"}
	}
	path := fmt.Sprintf("%s?heater=%d&thermostat=0&setpoint=%d", pathData, heater, encoded)
	return c.status(ctx, op, path)
}

func (c *Client) status(ctx context.Context, op, path string) (incomfort.RawStatus, error) {
	body, err := c.get(ctx, op, path)
	if err != nil {
		return nil, err
	}
	return decodeRawStatus(op, body)
}

func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &incomfort.TransportError{Op: op, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &incomfort.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &incomfort.TransportError{Op: op, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &incomfort.TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// errNotInteger marks a status member the firmware always sends as an integer.
var errNotInteger = errors.New("not an integer")

// decodeRawStatus keeps the integer members of a JSON object. A decoded
// field holding anything else is reported by name rather than dropped.
func decodeRawStatus(op string, body []byte) (incomfort.RawStatus, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &incomfort.ProtocolError{Op: op, Err: err}
	}
	if fields == nil {
		return nil, &incomfort.ProtocolError{Op: op, Err: errors.New("status is not an object")}
	}
	raw := make(incomfort.RawStatus, len(fields))
	for k, v := range fields {
		var n int
		if string(v) != "null" && json.Unmarshal(v, &n) == nil {
			raw[k] = n
		}
	}
	for _, name := range incomfort.StatusFields {
		if _, sent := fields[name]; !sent {
			continue
		}
		if _, ok := raw[name]; !ok {
			return nil, &incomfort.ProtocolError{Op: op, Field: name, Err: errNotInteger}
		}
	}
	return raw, nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case nil:
		return false
	default:
		return true
	}
}

func checkHeater(op string, heater int) error {
	if heater < 0 {
		return &incomfort.DomainError{Op: op, Value: heater, Reason: "heater index must be >= 0"}
	}
	return nil
}
