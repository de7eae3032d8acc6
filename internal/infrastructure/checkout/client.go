package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/DanielPopoola/checkout-relay/internal/application"
	"github.com/DanielPopoola/checkout-relay/internal/config"
)

const (
	authScheme       = "O-Bearer"
	maxResponseBytes = 1 << 20
)

type HTTPCheckoutClient struct {
	payURL       string
	statusURL    string
	httpClient   *http.Client
	logger       *slog.Logger
	maxBodyBytes int
}

func NewCheckoutClient(cfg config.CheckoutConfig, logger *slog.Logger, maxBodyBytes int) *HTTPCheckoutClient {
	return &HTTPCheckoutClient{
		payURL:    cfg.PayURL,
		statusURL: strings.TrimRight(cfg.StatusURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

func (c *HTTPCheckoutClient) CreatePayment(ctx context.Context, token string, req application.CreatePaymentRequest) (json.RawMessage, error) {
	return sendRequest(c, ctx, http.MethodPost, c.payURL, token, &req, application.OpCreatePayment)
}

func (c *HTTPCheckoutClient) GetOrderStatus(ctx context.Context, token string, merchantOrderID string) (json.RawMessage, error) {
	statusURL := fmt.Sprintf("%s/%s/status", c.statusURL, url.PathEscape(merchantOrderID))
	return sendRequest[any](c, ctx, http.MethodGet, statusURL, token, nil, application.OpOrderStatus)
}

func sendRequest[Req any](c *HTTPCheckoutClient, ctx context.Context, method, url, token string, reqBody *Req, operation string) (json.RawMessage, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)

		c.logger.Debug("sending checkout request", "operation", operation, "url", url, "payload", string(jsonData))
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", authScheme+" "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		tErr := application.NewTransportError(operation, err)
		c.logger.Error("checkout request failed", "operation", operation, "timeout", tErr.Timeout, "error", err)
		return nil, tErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, application.NewTransportError(operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("checkout API returned an error",
			"operation", operation,
			"status", resp.StatusCode,
			"body", application.TruncateBody(body, c.maxBodyBytes),
		)
		return nil, application.NewUpstreamError(operation, resp.StatusCode, body)
	}

	if !json.Valid(body) {
		return nil, &application.DecodeError{
			Operation: operation,
			Err:       fmt.Errorf("response is not valid json: %s", application.TruncateBody(body, c.maxBodyBytes)),
		}
	}

	c.logger.Debug("checkout response received",
		"operation", operation,
		"status", resp.StatusCode,
		"body", application.TruncateBody(body, c.maxBodyBytes),
	)

	return json.RawMessage(body), nil
}
