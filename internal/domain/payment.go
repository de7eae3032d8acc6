// Package domain holds the checkout session vocabulary shared by the relay:
// payment states observed upstream, money conversion and the cached access token.
package domain

import (
	"encoding/json"
	"fmt"
)

// PaymentState is the state of a checkout order as reported by the processor.
// The relay never transitions it; it only observes it by polling.
type PaymentState string

const (
	StatePending   PaymentState = "PENDING"
	StateCompleted PaymentState = "COMPLETED"
	StateFailed    PaymentState = "FAILED"
)

// CSS classes used by the status page.
const (
	ClassSuccess = "status-success"
	ClassPending = "status-pending"
	ClassFailed  = "status-failed"
)

// StatusClass maps a state to the status card style. Unknown states render as failed.
func StatusClass(state PaymentState) string {
	switch state {
	case StateCompleted:
		return ClassSuccess
	case StatePending:
		return ClassPending
	default:
		return ClassFailed
	}
}

func (s PaymentState) IsTerminal() bool {
	return s != StatePending
}

// PaymentStatus is the subset of the order status body the relay interprets.
// Raw keeps the upstream body verbatim.
type PaymentStatus struct {
	State   PaymentState    `json:"state"`
	OrderID string          `json:"orderId"`
	Amount  int64           `json:"amount"`
	Raw     json.RawMessage `json:"-"`
}

func ParsePaymentStatus(body []byte) (*PaymentStatus, error) {
	var status PaymentStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("error decoding order status: %w", err)
	}
	status.Raw = json.RawMessage(body)
	return &status, nil
}

// DisplayAmount renders the upstream minor-unit amount in major units.
func (s *PaymentStatus) DisplayAmount() string {
	return FormatMinorUnits(s.Amount)
}
