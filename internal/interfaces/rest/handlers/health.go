package handlers

import (
	"net/http"

	"github.com/DanielPopoola/checkout-relay/internal/interfaces/rest"
)

func (h *PaymentHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}
