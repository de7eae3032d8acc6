package identity

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/DanielPopoola/checkout-relay/internal/application"
	"github.com/DanielPopoola/checkout-relay/internal/config"
	"github.com/DanielPopoola/checkout-relay/internal/domain"
)

const (
	grantTypeClientCredentials = "client_credentials"
	maxResponseBytes           = 1 << 20
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	TokenType   string `json:"token_type"`
}

// HTTPIdentityClient performs the client-credentials grant against the
// processor's OAuth endpoint.
type HTTPIdentityClient struct {
	tokenURL      string
	clientID      string
	clientSecret  string
	clientVersion string
	httpClient    *http.Client
	logger        *slog.Logger
	maxBodyBytes  int
}

func NewIdentityClient(cfg config.IdentityConfig, logger *slog.Logger, maxBodyBytes int) *HTTPIdentityClient {
	return &HTTPIdentityClient{
		tokenURL:      cfg.TokenURL,
		clientID:      cfg.ClientID,
		clientSecret:  cfg.ClientSecret,
		clientVersion: cfg.ClientVersion,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

func (c *HTTPIdentityClient) Exchange(ctx context.Context) (*domain.AccessToken, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_version", c.clientVersion)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", grantTypeClientCredentials)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &application.TransportError{Operation: application.OpIdentity, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("requesting access token",
		"url", c.tokenURL,
		"client_id", c.clientID,
		"client_version", c.clientVersion,
		"grant_type", grantTypeClientCredentials,
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		tErr := application.NewTransportError(application.OpIdentity, err)
		c.logger.Error("access token request failed", "timeout", tErr.Timeout, "error", err)
		return nil, tErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, application.NewTransportError(application.OpIdentity, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("identity endpoint rejected credentials",
			"status", resp.StatusCode,
			"client_id", c.clientID,
			"body", application.TruncateBody(body, c.maxBodyBytes),
		)
		return nil, application.NewUpstreamError(application.OpIdentity, resp.StatusCode, body)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		c.logger.Error("malformed token response", "error", err)
		return nil, &application.DecodeError{Operation: application.OpIdentity, Err: err}
	}

	if tokenResp.AccessToken == "" {
		c.logger.Error("token response missing access_token")
		return nil, &application.DecodeError{
			Operation: application.OpIdentity,
			Err:       errors.New("access_token is empty"),
		}
	}

	token := &domain.AccessToken{
		Value:     tokenResp.AccessToken,
		ExpiresAt: tokenResp.ExpiresAt,
	}

	c.logger.Info("new access token obtained", "expires_at", token.ExpiryTime())

	return token, nil
}
