package handlers

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/DanielPopoola/checkout-relay/internal/domain"
	"github.com/DanielPopoola/checkout-relay/internal/interfaces/rest"
	"github.com/DanielPopoola/checkout-relay/internal/interfaces/rest/middleware"
)

func (h *PaymentHandler) HandlePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var merchantOrderID string

	err := runtime.BindStyledParameterWithOptions("simple", "merchantOrderId", r.PathValue("merchantOrderId"), &merchantOrderID, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		rest.WriteError(w, domain.NewInvalidFieldError("merchantOrderId", err), h.logger)
		return
	}

	status, err := h.payments.GetPaymentStatus(r.Context(), merchantOrderID)
	if err != nil {
		h.logger.Warn("payment status failed",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"merchant_order_id", merchantOrderID,
			"error", err,
		)
		rest.WriteError(w, err, h.logger)
		return
	}

	if rest.WantsJSON(r) {
		rest.WriteRaw(w, http.StatusOK, status.Raw)
		return
	}

	if err := renderStatusPage(w, status); err != nil {
		h.logger.Error("failed to render status page",
			"merchant_order_id", merchantOrderID,
			"error", err,
		)
	}
}
