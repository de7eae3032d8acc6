package services

// CreatePaymentCommand carries an inbound create request before validation.
// Amount is the textual major-unit amount exactly as the caller sent it.
type CreatePaymentCommand struct {
	MerchantOrderID string
	Amount          string
	RedirectBaseURL string
}
