package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/DanielPopoola/checkout-relay/internal/application"
	"github.com/DanielPopoola/checkout-relay/internal/application/services"
	"github.com/DanielPopoola/checkout-relay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPaymentService struct {
	createFn func(ctx context.Context, cmd services.CreatePaymentCommand) (json.RawMessage, error)
	statusFn func(ctx context.Context, merchantOrderID string) (*domain.PaymentStatus, error)
}

func (m *mockPaymentService) CreatePayment(ctx context.Context, cmd services.CreatePaymentCommand) (json.RawMessage, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockPaymentService) GetPaymentStatus(ctx context.Context, merchantOrderID string) (*domain.PaymentStatus, error) {
	return m.statusFn(ctx, merchantOrderID)
}

func newTestMux(svc PaymentService, publicBaseURL string) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	NewPaymentHandler(svc, publicBaseURL, logger).RegisterRoutes(mux)
	return mux
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleCreatePayment_JSONNumberAmount(t *testing.T) {
	upstream := `{"orderId":"OMO1","state":"PENDING","redirectUrl":"https://pay.example.com/r/1"}`
	var got services.CreatePaymentCommand

	svc := &mockPaymentService{
		createFn: func(ctx context.Context, cmd services.CreatePaymentCommand) (json.RawMessage, error) {
			got = cmd
			return json.RawMessage(upstream), nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/create-payment", strings.NewReader(`{"amount":500,"merchantOrderId":"ORDER123"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Host = "shop.example.com"
	rec := httptest.NewRecorder()

	newTestMux(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, upstream, rec.Body.String())
	assert.Equal(t, services.CreatePaymentCommand{
		MerchantOrderID: "ORDER123",
		Amount:          "500",
		RedirectBaseURL: "http://shop.example.com",
	}, got)
}

func TestHandleCreatePayment_StringAmountAndPublicBaseURL(t *testing.T) {
	var got services.CreatePaymentCommand
	svc := &mockPaymentService{
		createFn: func(ctx context.Context, cmd services.CreatePaymentCommand) (json.RawMessage, error) {
			got = cmd
			return json.RawMessage(`{}`), nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/create-payment", strings.NewReader(`{"amount":"12.50","merchantOrderId":"A-1"}`))
	rec := httptest.NewRecorder()

	newTestMux(svc, "https://relay.example.com").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12.50", got.Amount)
	assert.Equal(t, "https://relay.example.com", got.RedirectBaseURL)
}

func TestHandleCreatePayment_FormBody(t *testing.T) {
	var got services.CreatePaymentCommand
	svc := &mockPaymentService{
		createFn: func(ctx context.Context, cmd services.CreatePaymentCommand) (json.RawMessage, error) {
			got = cmd
			return json.RawMessage(`{"state":"PENDING"}`), nil
		},
	}

	form := url.Values{"amount": {"5"}, "merchantOrderId": {"FORM-1"}}
	req := httptest.NewRequest(http.MethodPost, "/create-payment", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	newTestMux(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "FORM-1", got.MerchantOrderID)
	assert.Equal(t, "5", got.Amount)
}

func TestHandleCreatePayment_MultipartBody(t *testing.T) {
	var got services.CreatePaymentCommand
	svc := &mockPaymentService{
		createFn: func(ctx context.Context, cmd services.CreatePaymentCommand) (json.RawMessage, error) {
			got = cmd
			return json.RawMessage(`{"state":"PENDING"}`), nil
		},
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("amount", "5"))
	require.NoError(t, mw.WriteField("merchantOrderId", "MP-1"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/create-payment", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	newTestMux(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "MP-1", got.MerchantOrderID)
	assert.Equal(t, "5", got.Amount)
}

func TestHandleCreatePayment_IgnoresUnknownForwardedProto(t *testing.T) {
	var got services.CreatePaymentCommand
	svc := &mockPaymentService{
		createFn: func(ctx context.Context, cmd services.CreatePaymentCommand) (json.RawMessage, error) {
			got = cmd
			return json.RawMessage(`{}`), nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/create-payment", strings.NewReader(`{"amount":5,"merchantOrderId":"X"}`))
	req.Host = "example.com"
	req.Header.Set("X-Forwarded-Proto", "javascript")
	rec := httptest.NewRecorder()

	newTestMux(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://example.com", got.RedirectBaseURL)
}

func TestHandleCreatePayment_ValidationError(t *testing.T) {
	svc := &mockPaymentService{
		createFn: func(ctx context.Context, cmd services.CreatePaymentCommand) (json.RawMessage, error) {
			assert.Empty(t, cmd.Amount)
			return nil, domain.NewMissingRequiredFieldError("amount")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/create-payment", strings.NewReader(`{"merchantOrderId":"ORDER123"}`))
	rec := httptest.NewRecorder()

	newTestMux(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, "amount is required", body["error"])
}

func TestHandleCreatePayment_MalformedJSON(t *testing.T) {
	svc := &mockPaymentService{
		createFn: func(ctx context.Context, cmd services.CreatePaymentCommand) (json.RawMessage, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/create-payment", strings.NewReader(`{"amount":`))
	rec := httptest.NewRecorder()

	newTestMux(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec)["code"])
}

func TestHandleCreatePayment_UpstreamErrorRelayed(t *testing.T) {
	svc := &mockPaymentService{
		createFn: func(ctx context.Context, cmd services.CreatePaymentCommand) (json.RawMessage, error) {
			return nil, application.NewUpstreamError(application.OpCreatePayment, 400, []byte(`{"code":"BAD_REQUEST","message":"duplicate"}`))
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/create-payment", strings.NewReader(`{"amount":5,"merchantOrderId":"X"}`))
	rec := httptest.NewRecorder()

	newTestMux(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"BAD_REQUEST","message":"duplicate"},"code":"UPSTREAM_ERROR"}`, rec.Body.String())
}

func TestHandleCreatePayment_UpstreamTimeout(t *testing.T) {
	svc := &mockPaymentService{
		createFn: func(ctx context.Context, cmd services.CreatePaymentCommand) (json.RawMessage, error) {
			return nil, application.NewTransportError(application.OpCreatePayment, fmt.Errorf("post: %w", context.DeadlineExceeded))
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/create-payment", strings.NewReader(`{"amount":5,"merchantOrderId":"X"}`))
	rec := httptest.NewRecorder()

	newTestMux(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, "UPSTREAM_TIMEOUT", decodeError(t, rec)["code"])
}

func completedStatus(orderID string) *domain.PaymentStatus {
	raw := fmt.Sprintf(`{"orderId":%q,"state":"COMPLETED","amount":50000}`, orderID)
	status, _ := domain.ParsePaymentStatus([]byte(raw))
	return status
}

func TestHandlePaymentStatus_RendersPage(t *testing.T) {
	svc := &mockPaymentService{
		statusFn: func(ctx context.Context, merchantOrderID string) (*domain.PaymentStatus, error) {
			assert.Equal(t, "ORDER123", merchantOrderID)
			return completedStatus("OMO123"), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/payment-status/ORDER123", nil)
	rec := httptest.NewRecorder()

	newTestMux(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	page := rec.Body.String()
	assert.Contains(t, page, `class="status-card status-success"`)
	assert.Contains(t, page, "Status: COMPLETED")
	assert.Contains(t, page, "Order ID: OMO123")
	assert.Contains(t, page, "&#8377;500.00")
	assert.Contains(t, page, `<a href="/">Back to Home</a>`)
}

func TestHandlePaymentStatus_EscapesUpstreamValues(t *testing.T) {
	svc := &mockPaymentService{
		statusFn: func(ctx context.Context, merchantOrderID string) (*domain.PaymentStatus, error) {
			return completedStatus("<script>alert(1)</script>"), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/payment-status/X", nil)
	rec := httptest.NewRecorder()

	newTestMux(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestHandlePaymentStatus_UnknownStateRendersFailed(t *testing.T) {
	svc := &mockPaymentService{
		statusFn: func(ctx context.Context, merchantOrderID string) (*domain.PaymentStatus, error) {
			return domain.ParsePaymentStatus([]byte(`{"orderId":"O","state":"EXPIRED","amount":100}`))
		},
	}

	rec := httptest.NewRecorder()
	newTestMux(svc, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payment-status/O", nil))

	assert.Contains(t, rec.Body.String(), "status-failed")
	assert.Contains(t, rec.Body.String(), "&#8377;1.00")
}

func TestHandlePaymentStatus_JSONWhenAccepted(t *testing.T) {
	status := completedStatus("OMO123")
	svc := &mockPaymentService{
		statusFn: func(ctx context.Context, merchantOrderID string) (*domain.PaymentStatus, error) {
			return status, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/payment-status/ORDER123", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	newTestMux(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, string(status.Raw), rec.Body.String())
}

func TestHandlePaymentStatus_EscapedPathValue(t *testing.T) {
	svc := &mockPaymentService{
		statusFn: func(ctx context.Context, merchantOrderID string) (*domain.PaymentStatus, error) {
			assert.Equal(t, "ORDER 1", merchantOrderID)
			return completedStatus("OMO1"), nil
		},
	}

	rec := httptest.NewRecorder()
	newTestMux(svc, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payment-status/ORDER%201", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePaymentStatus_AuthFailure(t *testing.T) {
	svc := &mockPaymentService{
		statusFn: func(ctx context.Context, merchantOrderID string) (*domain.PaymentStatus, error) {
			return nil, application.NewUpstreamError(application.OpIdentity, 401, []byte("unauthorized"))
		},
	}

	rec := httptest.NewRecorder()
	newTestMux(svc, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payment-status/ORDER123", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "UPSTREAM_AUTH_ERROR", body["code"])
	assert.Equal(t, "unauthorized", body["error"])
}

func TestHandlePaymentStatus_TransportFailure(t *testing.T) {
	svc := &mockPaymentService{
		statusFn: func(ctx context.Context, merchantOrderID string) (*domain.PaymentStatus, error) {
			return nil, application.NewTransportError(application.OpOrderStatus, errors.New("connection refused"))
		},
	}

	rec := httptest.NewRecorder()
	newTestMux(svc, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payment-status/ORDER123", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", decodeError(t, rec)["code"])
}

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux(&mockPaymentService{}, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
