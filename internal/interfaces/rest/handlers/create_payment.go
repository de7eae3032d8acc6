package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/DanielPopoola/checkout-relay/internal/application/services"
	"github.com/DanielPopoola/checkout-relay/internal/domain"
	"github.com/DanielPopoola/checkout-relay/internal/interfaces/rest"
	"github.com/DanielPopoola/checkout-relay/internal/interfaces/rest/middleware"
)

const maxRequestBytes = 1 << 20

type CreatePaymentRequest struct {
	MerchantOrderID string     `json:"merchantOrderId"`
	Amount          AmountText `json:"amount"`
}

// AmountText accepts the amount as a JSON number or a numeric string and keeps
// its literal text, so no precision is lost before conversion.
type AmountText string

func (a *AmountText) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*a = ""
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountText(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*a = AmountText(n)
	}
	return nil
}

func (h *PaymentHandler) HandleCreatePayment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	req, err := decodeCreatePaymentRequest(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	cmd := services.CreatePaymentCommand{
		MerchantOrderID: req.MerchantOrderID,
		Amount:          string(req.Amount),
		RedirectBaseURL: rest.BaseURL(r, h.publicBaseURL),
	}

	body, err := h.payments.CreatePayment(r.Context(), cmd)
	if err != nil {
		h.logger.Warn("create payment failed",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"merchant_order_id", req.MerchantOrderID,
			"error", err,
		)
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteRaw(w, http.StatusOK, body)
}

func decodeCreatePaymentRequest(r *http.Request) (CreatePaymentRequest, error) {
	if rest.IsFormRequest(r) {
		parse := r.ParseForm
		if rest.IsMultipartRequest(r) {
			parse = func() error { return r.ParseMultipartForm(maxRequestBytes) }
		}
		if err := parse(); err != nil {
			return CreatePaymentRequest{}, domain.NewInvalidFieldError("request body", err)
		}
		return CreatePaymentRequest{
			MerchantOrderID: r.PostFormValue("merchantOrderId"),
			Amount:          AmountText(r.PostFormValue("amount")),
		}, nil
	}

	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return CreatePaymentRequest{}, domain.NewInvalidFieldError("request body", err)
	}
	return req, nil
}
