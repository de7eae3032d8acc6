package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/checkout-relay/internal/application/services"
	"github.com/DanielPopoola/checkout-relay/internal/domain"
)

// PaymentService is what the handlers need from the application layer.
type PaymentService interface {
	CreatePayment(ctx context.Context, cmd services.CreatePaymentCommand) (json.RawMessage, error)
	GetPaymentStatus(ctx context.Context, merchantOrderID string) (*domain.PaymentStatus, error)
}

type PaymentHandler struct {
	payments      PaymentService
	publicBaseURL string
	logger        *slog.Logger
}

// NewPaymentHandler wires the relay routes. publicBaseURL may be empty, in which
// case redirect URLs are derived from each request.
func NewPaymentHandler(payments PaymentService, publicBaseURL string, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments:      payments,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /create-payment", h.HandleCreatePayment)
	mux.HandleFunc("GET /payment-status/{merchantOrderId}", h.HandlePaymentStatus)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
}
