package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSpec(t *testing.T) {
	doc, err := LoadSpec(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Checkout Relay", doc.Info.Title)
	assert.NotNil(t, doc.Paths.Find("/create-payment"))
	assert.NotNil(t, doc.Paths.Find("/payment-status/{merchantOrderId}"))
	assert.NotNil(t, doc.Paths.Find("/healthz"))
}

func TestRegisterDocsRoutes(t *testing.T) {
	doc, err := LoadSpec(context.Background())
	require.NoError(t, err)

	mux := http.NewServeMux()
	require.NoError(t, RegisterDocsRoutes(mux, doc))

	for _, path := range []string{"/openapi.json", "/swagger/doc.json"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, rec.Code, path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), path)
		assert.Equal(t, "3.0.3", body["openapi"], path)
	}
}
