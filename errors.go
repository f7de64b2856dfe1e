package incomfort

import (
	"errors"
	"fmt"
)

// Error classes. Match with errors.Is on any error returned by the client stack.
var (
	ErrTransport = errors.New("transport error")
	ErrProtocol  = errors.New("protocol error")
	ErrDomain    = errors.New("domain error")
)

// TransportError reports a connection failure or a non-2xx gateway response.
type TransportError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: gateway returned HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// ProtocolError reports a response whose shape does not match the gateway contract.
type ProtocolError struct {
	Op    string
	Field string
	Err   error
}

func (e *ProtocolError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("%s: field %q: %v", e.Op, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: missing field %q", e.Op, e.Field)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *ProtocolError) Unwrap() error { return e.Err }

func (e *ProtocolError) Is(target error) bool { return target == ErrProtocol }

// DomainError reports a value outside the range a decode or encode step accepts.
type DomainError struct {
	Op     string
	Value  any
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Value, e.Reason)
}

func (e *DomainError) Is(target error) bool { return target == ErrDomain }
