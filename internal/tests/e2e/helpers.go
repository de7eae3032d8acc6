package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DanielPopoola/checkout-relay/internal/api"
	"github.com/DanielPopoola/checkout-relay/internal/app"
	"github.com/DanielPopoola/checkout-relay/internal/config"
	"github.com/DanielPopoola/checkout-relay/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/checkout-relay/internal/interfaces/rest/middleware"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "relay-test-client"
	testClientSecret = "relay-test-secret"
)

// FakeProcessor plays the identity and checkout APIs.
type FakeProcessor struct {
	Server *httptest.Server

	exchanges     atomic.Int32
	tokenTTL      atomic.Int64
	exchangeDelay time.Duration
	rejectAuth    atomic.Bool

	mu       sync.Mutex
	orders   map[string]fakeOrder
	lastAuth string
}

type fakeOrder struct {
	Amount      int64
	RedirectURL string
	State       string
}

type payRequest struct {
	MerchantOrderID string `json:"merchantOrderId"`
	Amount          int64  `json:"amount"`
	ExpireAfter     int    `json:"expireAfter"`
	PaymentFlow     struct {
		Type         string `json:"type"`
		MerchantURLs struct {
			RedirectURL string `json:"redirectUrl"`
		} `json:"merchantUrls"`
	} `json:"paymentFlow"`
}

func NewFakeProcessor(t *testing.T, exchangeDelay time.Duration) *FakeProcessor {
	p := &FakeProcessor{
		exchangeDelay: exchangeDelay,
		orders:        make(map[string]fakeOrder),
	}
	p.tokenTTL.Store(int64(time.Hour / time.Second))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/oauth/token", p.handleToken)
	mux.HandleFunc("POST /checkout/v2/pay", p.handlePay)
	mux.HandleFunc("GET /checkout/v2/order/{id}/status", p.handleStatus)

	p.Server = httptest.NewServer(mux)
	t.Cleanup(p.Server.Close)
	return p
}

func (p *FakeProcessor) Exchanges() int {
	return int(p.exchanges.Load())
}

// SetTokenTTL controls expires_at of issued tokens; a negative ttl issues stale tokens.
func (p *FakeProcessor) SetTokenTTL(ttl time.Duration) {
	p.tokenTTL.Store(int64(ttl / time.Second))
}

func (p *FakeProcessor) RejectCredentials() {
	p.rejectAuth.Store(true)
}

func (p *FakeProcessor) SetState(merchantOrderID, state string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	order := p.orders[merchantOrderID]
	order.State = state
	p.orders[merchantOrderID] = order
}

func (p *FakeProcessor) Order(merchantOrderID string) (fakeOrder, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	order, ok := p.orders[merchantOrderID]
	return order, ok
}

func (p *FakeProcessor) LastAuthorization() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastAuth
}

func (p *FakeProcessor) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if p.rejectAuth.Load() || r.PostFormValue("client_secret") != testClientSecret || r.PostFormValue("grant_type") != "client_credentials" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","message":"invalid client"}`))
		return
	}

	n := p.exchanges.Add(1)
	time.Sleep(p.exchangeDelay)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": fmt.Sprintf("tok-%d", n),
		"expires_at":   time.Now().Unix() + p.tokenTTL.Load(),
		"token_type":   "O-Bearer",
	})
}

func (p *FakeProcessor) handlePay(w http.ResponseWriter, r *http.Request) {
	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p.mu.Lock()
	p.lastAuth = r.Header.Get("Authorization")
	_, exists := p.orders[req.MerchantOrderID]
	if !exists {
		p.orders[req.MerchantOrderID] = fakeOrder{
			Amount:      req.Amount,
			RedirectURL: req.PaymentFlow.MerchantURLs.RedirectURL,
			State:       "PENDING",
		}
	}
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if exists {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"DUPLICATE_ORDER","message":"merchantOrderId already used"}`))
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"orderId":     "OMO-" + req.MerchantOrderID,
		"state":       "PENDING",
		"expireAt":    time.Now().Add(time.Duration(req.ExpireAfter) * time.Second).UnixMilli(),
		"redirectUrl": p.Server.URL + "/checkout/" + url.PathEscape(req.MerchantOrderID),
	})
}

func (p *FakeProcessor) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	p.mu.Lock()
	p.lastAuth = r.Header.Get("Authorization")
	order, ok := p.orders[id]
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"ORDER_NOT_FOUND","message":"no such order"}`))
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"orderId": "OMO-" + id,
		"state":   order.State,
		"amount":  order.Amount,
	})
}

// StartRelay runs the full relay handler chain against the fake processor.
func StartRelay(t *testing.T, processor *FakeProcessor) *httptest.Server {
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			RequestTimeout: 5 * time.Second,
		},
		Identity: config.IdentityConfig{
			TokenURL:      processor.Server.URL + "/v1/oauth/token",
			ClientID:      testClientID,
			ClientSecret:  testClientSecret,
			ClientVersion: "1",
			Timeout:       2 * time.Second,
		},
		Checkout: config.CheckoutConfig{
			PayURL:      processor.Server.URL + "/checkout/v2/pay",
			StatusURL:   processor.Server.URL + "/checkout/v2/order/",
			Timeout:     2 * time.Second,
			ExpireAfter: 1200,
			FlowType:    "PG_CHECKOUT",
			Message:     "Payment for your order",
		},
		Logger: config.LoggerConfig{Level: "error", MaxBodyBytes: 512},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	relay := app.New(cfg, logger)

	doc, err := api.LoadSpec(context.Background())
	require.NoError(t, err)

	mux := http.NewServeMux()
	require.NoError(t, api.RegisterDocsRoutes(mux, doc))
	handlers.NewPaymentHandler(relay.Payments, cfg.Server.PublicBaseURL, logger).RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Timeout(cfg.Server.RequestTimeout)(handler)
	handler = middleware.Logging(logger)(handler)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

// TestClient wraps HTTP calls to the relay
type TestClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (r *Response) JSON(t *testing.T) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal(r.Body, &v), string(r.Body))
	return v
}

func (c *TestClient) CreatePayment(t *testing.T, body string) *Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/create-payment", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return c.do(t, req)
}

func (c *TestClient) PaymentStatus(t *testing.T, merchantOrderID string, accept string) *Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/payment-status/"+url.PathEscape(merchantOrderID), nil)
	require.NoError(t, err)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return c.do(t, req)
}

func (c *TestClient) Get(t *testing.T, path string) *Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	require.NoError(t, err)
	return c.do(t, req)
}

func (c *TestClient) do(t *testing.T, req *http.Request) *Response {
	t.Helper()
	resp, err := c.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}
}
