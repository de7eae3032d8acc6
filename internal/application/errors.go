package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
)

// Upstream operations, used to tell identity failures from checkout failures.
const (
	OpIdentity      = "identity"
	OpCreatePayment = "create_payment"
	OpOrderStatus   = "order_status"
)

// UpstreamError is a non-2xx answer from the identity or checkout API.
// Body holds the upstream payload verbatim so it can be relayed to the caller.
type UpstreamError struct {
	Operation  string
	StatusCode int
	Code       string
	Message    string
	Body       []byte
}

type upstreamErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewUpstreamError builds an UpstreamError, picking code/message out of the body when it is JSON.
func NewUpstreamError(operation string, statusCode int, body []byte) *UpstreamError {
	upErr := &UpstreamError{
		Operation:  operation,
		StatusCode: statusCode,
		Body:       body,
	}

	var resp upstreamErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		upErr.Code = resp.Code
		upErr.Message = resp.Message
	}

	return upErr
}

func (e *UpstreamError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s error [%s]: %s (status: %d)", e.Operation, e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d", e.Operation, e.StatusCode)
}

func (e *UpstreamError) IsAuth() bool {
	return e.Operation == OpIdentity
}

// Payload returns what the caller should see in the "error" field: the upstream
// JSON body when there is one, otherwise the error text.
func (e *UpstreamError) Payload() any {
	if len(e.Body) > 0 && json.Valid(e.Body) {
		return json.RawMessage(e.Body)
	}
	if len(e.Body) > 0 {
		return string(e.Body)
	}
	return e.Error()
}

func IsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	ok := errors.As(err, &upErr)
	return upErr, ok
}

// TransportError is a failure to get any HTTP answer from upstream.
type TransportError struct {
	Operation string
	Timeout   bool
	Err       error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s request timed out: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("error making %s request: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsTransportError(err error) (*TransportError, bool) {
	var tErr *TransportError
	ok := errors.As(err, &tErr)
	return tErr, ok
}

// DecodeError is a 2xx answer whose body could not be interpreted.
type DecodeError struct {
	Operation string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error decoding %s response: %v", e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func IsDecodeError(err error) (*DecodeError, bool) {
	var dErr *DecodeError
	ok := errors.As(err, &dErr)
	return dErr, ok
}

// NewTransportError wraps a failed round trip, flagging client and context timeouts.
func NewTransportError(operation string, err error) *TransportError {
	timeout := errors.Is(err, context.DeadlineExceeded)
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		timeout = true
	}
	return &TransportError{Operation: operation, Timeout: timeout, Err: err}
}

// TruncateBody shortens an upstream body for logging.
func TruncateBody(body []byte, max int) string {
	if max <= 0 || len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "...(truncated)"
}
