package handlers

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/DanielPopoola/checkout-relay/internal/domain"
)

//go:embed templates/status.html
var templateFS embed.FS

var statusPage = template.Must(template.ParseFS(templateFS, "templates/status.html"))

type statusPageData struct {
	Class   string
	State   domain.PaymentState
	OrderID string
	Amount  string
	Details string
}

func renderStatusPage(w http.ResponseWriter, status *domain.PaymentStatus) error {
	details := string(status.Raw)
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, status.Raw, "", "  "); err == nil {
		details = pretty.String()
	}

	data := statusPageData{
		Class:   domain.StatusClass(status.State),
		State:   status.State,
		OrderID: status.OrderID,
		Amount:  status.DisplayAmount(),
		Details: details,
	}

	var buf bytes.Buffer
	if err := statusPage.Execute(&buf, data); err != nil {
		http.Error(w, "failed to render status page", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}
