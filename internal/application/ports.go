package application

import (
	"context"
	"encoding/json"

	"github.com/DanielPopoola/checkout-relay/internal/domain"
)

// IdentityClient is the port for the processor's OAuth token endpoint.
type IdentityClient interface {
	Exchange(ctx context.Context) (*domain.AccessToken, error)
}

// TokenSource supplies a bearer token that is valid at the time of the call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// CheckoutClient is the port for the external checkout API.
type CheckoutClient interface {
	CreatePayment(ctx context.Context, token string, req CreatePaymentRequest) (json.RawMessage, error)
	GetOrderStatus(ctx context.Context, token string, merchantOrderID string) (json.RawMessage, error)
}

type CreatePaymentRequest struct {
	MerchantOrderID string      `json:"merchantOrderId"`
	Amount          int64       `json:"amount"`
	ExpireAfter     int         `json:"expireAfter"`
	PaymentFlow     PaymentFlow `json:"paymentFlow"`
}

type PaymentFlow struct {
	Type         string       `json:"type"`
	Message      string       `json:"message,omitempty"`
	MerchantURLs MerchantURLs `json:"merchantUrls"`
}

type MerchantURLs struct {
	RedirectURL string `json:"redirectUrl"`
}
