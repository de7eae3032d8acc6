package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"

	"github.com/DanielPopoola/checkout-relay/internal/application"
	"github.com/DanielPopoola/checkout-relay/internal/config"
	"github.com/DanielPopoola/checkout-relay/internal/domain"
)

const statusPathPrefix = "/payment-status/"

// PaymentService creates checkout sessions and reads their status on behalf of
// the storefront. It owns no payment state.
type PaymentService struct {
	tokens      application.TokenSource
	checkout    application.CheckoutClient
	expireAfter int
	flowType    string
	message     string
	logger      *slog.Logger
}

func NewPaymentService(
	tokens application.TokenSource,
	checkout application.CheckoutClient,
	cfg config.CheckoutConfig,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		tokens:      tokens,
		checkout:    checkout,
		expireAfter: cfg.ExpireAfter,
		flowType:    cfg.FlowType,
		message:     cfg.Message,
		logger:      logger,
	}
}

func (s *PaymentService) CreatePayment(ctx context.Context, cmd CreatePaymentCommand) (json.RawMessage, error) {
	if strings.TrimSpace(cmd.MerchantOrderID) == "" {
		return nil, domain.NewMissingRequiredFieldError("merchantOrderId")
	}

	amount, err := domain.ParseMajorAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	minorUnits, err := amount.MinorUnits()
	if err != nil {
		return nil, err
	}

	if amount.Truncated() {
		s.logger.Warn("amount has sub-minor-unit precision, truncating",
			"merchant_order_id", cmd.MerchantOrderID,
			"amount", amount.String(),
			"minor_units", minorUnits,
		)
	}

	req := application.CreatePaymentRequest{
		MerchantOrderID: cmd.MerchantOrderID,
		Amount:          minorUnits,
		ExpireAfter:     s.expireAfter,
		PaymentFlow: application.PaymentFlow{
			Type:    s.flowType,
			Message: s.message,
			MerchantURLs: application.MerchantURLs{
				RedirectURL: StatusURL(cmd.RedirectBaseURL, cmd.MerchantOrderID),
			},
		},
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	body, err := s.checkout.CreatePayment(ctx, token, req)
	if err != nil {
		s.logger.Error("error creating payment",
			"merchant_order_id", cmd.MerchantOrderID,
			"category", application.CategorizeError(err),
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("payment session created",
		"merchant_order_id", cmd.MerchantOrderID,
		"amount", minorUnits,
	)

	return body, nil
}

func (s *PaymentService) GetPaymentStatus(ctx context.Context, merchantOrderID string) (*domain.PaymentStatus, error) {
	if strings.TrimSpace(merchantOrderID) == "" {
		return nil, domain.NewMissingRequiredFieldError("merchantOrderId")
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	body, err := s.checkout.GetOrderStatus(ctx, token, merchantOrderID)
	if err != nil {
		s.logger.Error("error checking payment status",
			"merchant_order_id", merchantOrderID,
			"category", application.CategorizeError(err),
			"error", err,
		)
		return nil, err
	}

	status, err := domain.ParsePaymentStatus(body)
	if err != nil {
		return nil, &application.DecodeError{Operation: application.OpOrderStatus, Err: err}
	}

	s.logger.Info("payment status fetched",
		"merchant_order_id", merchantOrderID,
		"state", status.State,
	)

	return status, nil
}

// StatusURL is the relay's own status page for an order, used as the checkout redirect.
func StatusURL(baseURL, merchantOrderID string) string {
	return strings.TrimRight(baseURL, "/") + statusPathPrefix + url.PathEscape(merchantOrderID)
}
