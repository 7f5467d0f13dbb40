package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-resty/resty/v2"

	"evnex-cli/internal/auth"
)

// Error kinds. Match them with errors.Is.
var (
	ErrAuth              = errors.New("authentication failed")
	ErrNotFound          = errors.New("not found")
	ErrDeviceUnreachable = errors.New("charge point unreachable")
	ErrTransport         = errors.New("transport failure")
	ErrSchema            = errors.New("unexpected response shape")
	ErrRequest           = errors.New("request rejected")
)

const maxBodyInError = 512

// Error is returned by every Evnex operation.
type Error struct {
	Op         string
	StatusCode int
	Body       string
	Kind       error
	Err        error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	if e.Body != "" {
		return msg + ": " + e.Body
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// authError maps identity provider failures. A provider that cannot be
// reached is still an auth failure for the caller, but also a transport one.
func authError(op string, err error) error {
	if errors.Is(err, auth.ErrUnavailable) {
		return &Error{Op: op, Kind: ErrAuth, Err: fmt.Errorf("%w: %w", ErrTransport, err)}
	}
	return &Error{Op: op, Kind: ErrAuth, Err: err}
}

func transportError(req request, err error) error {
	if isTimeout(err) && req.device {
		return &Error{Op: req.op, Kind: ErrDeviceUnreachable, Err: err}
	}
	return &Error{Op: req.op, Kind: ErrTransport, Err: err}
}

func statusError(req request, resp *resty.Response) error {
	e := &Error{
		Op:         req.op,
		StatusCode: resp.StatusCode(),
		Body:       truncate(resp.String(), maxBodyInError),
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		e.Kind = ErrAuth
	case code == http.StatusNotFound:
		e.Kind = ErrNotFound
	case req.device && (code == http.StatusBadGateway || code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout):
		e.Kind = ErrDeviceUnreachable
	case code >= 500:
		e.Kind = ErrTransport
	default:
		e.Kind = ErrRequest
	}
	return e
}

func schemaError(op string, status int, err error) error {
	return &Error{Op: op, StatusCode: status, Kind: ErrSchema, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
