package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DanielPopoola/checkout-relay/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RELAY_IDENTITY__TOKEN_URL", "https://identity.example.com/oauth/token")
	t.Setenv("RELAY_IDENTITY__CLIENT_ID", "client-123")
	t.Setenv("RELAY_IDENTITY__CLIENT_SECRET", "s3cret")
	t.Setenv("RELAY_CHECKOUT__PAY_URL", "https://pg.example.com/checkout/v2/pay")
	t.Setenv("RELAY_CHECKOUT__STATUS_URL", "https://pg.example.com/checkout/v2/order")
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 12*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "1", cfg.Identity.ClientVersion)
	assert.Equal(t, 5*time.Second, cfg.Identity.Timeout)
	assert.Equal(t, 1200, cfg.Checkout.ExpireAfter)
	assert.Equal(t, "PG_CHECKOUT", cfg.Checkout.FlowType)
	assert.Equal(t, "Payment for your order", cfg.Checkout.Message)
	assert.Equal(t, 512, cfg.Logger.MaxBodyBytes)
	assert.Zero(t, cfg.Worker.TokenWarmInterval)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RELAY_CHECKOUT__EXPIRE_AFTER", "600")
	t.Setenv("RELAY_SERVER__REQUEST_TIMEOUT", "3s")
	t.Setenv("RELAY_SERVER__PUBLIC_BASE_URL", "https://shop.example.com")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.Checkout.ExpireAfter)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "https://shop.example.com", cfg.Server.PublicBaseURL)
	assert.Equal(t, "s3cret", cfg.Identity.ClientSecret)
}

func TestLoadConfig_MissingSecretFails(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RELAY_IDENTITY__CLIENT_SECRET", "")

	cfg, err := config.LoadConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_RejectsInvalidURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RELAY_CHECKOUT__PAY_URL", "not a url")

	_, err := config.LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_ReadsYAMLFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "relay.yaml")
	content := []byte("checkout:\n  flow_type: PG_CUSTOM\n  expire_after: 900\nlogger:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("RELAY_CONFIG_FILE", path)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "PG_CUSTOM", cfg.Checkout.FlowType)
	assert.Equal(t, 900, cfg.Checkout.ExpireAfter)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoggerConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, config.LoggerConfig{Level: tt.level}.SlogLevel())
		})
	}
}

func TestLoggerConfig_NewLoggerTo(t *testing.T) {
	var buf bytes.Buffer

	logger := config.LoggerConfig{Level: "warn", Format: "json"}.NewLoggerTo(&buf)
	logger.Info("dropped")
	logger.Warn("kept", "merchant_order_id", "ORDER123")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"msg":"kept"`)
	assert.Contains(t, out, `"merchant_order_id":"ORDER123"`)
}
