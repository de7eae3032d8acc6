package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

const (
	envPrefix     = "RELAY_"
	configFileEnv = "RELAY_CONFIG_FILE"
)

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Identity IdentityConfig `koanf:"identity"`
	Checkout CheckoutConfig `koanf:"checkout"`
	Logger   LoggerConfig   `koanf:"logger"`
	Worker   WorkerConfig   `koanf:"worker"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required"`
	// PublicBaseURL overrides the scheme and host used for payment redirect URLs.
	// When empty they are derived from the incoming request.
	PublicBaseURL string `koanf:"public_base_url" validate:"omitempty,url"`
}

// IdentityConfig holds the client-credentials used against the processor's
// OAuth token endpoint.
type IdentityConfig struct {
	TokenURL      string        `koanf:"token_url" validate:"required,url"`
	ClientID      string        `koanf:"client_id" validate:"required"`
	ClientSecret  string        `koanf:"client_secret" validate:"required"`
	ClientVersion string        `koanf:"client_version" validate:"required"`
	Timeout       time.Duration `koanf:"timeout" validate:"required"`
}

type CheckoutConfig struct {
	PayURL      string        `koanf:"pay_url" validate:"required,url"`
	StatusURL   string        `koanf:"status_url" validate:"required,url"`
	Timeout     time.Duration `koanf:"timeout" validate:"required"`
	ExpireAfter int           `koanf:"expire_after" validate:"required,gt=0"`
	FlowType    string        `koanf:"flow_type" validate:"required"`
	Message     string        `koanf:"message"`
}

type LoggerConfig struct {
	Level        string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Format       string `koanf:"format" validate:"omitempty,oneof=text json"`
	MaxBodyBytes int    `koanf:"max_body_bytes" validate:"min=0"`
}

type WorkerConfig struct {
	// TokenWarmInterval enables the background token warmer when non-zero.
	TokenWarmInterval time.Duration `koanf:"token_warm_interval"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                "development",
		"server.port":                "5000",
		"server.read_timeout":        "10s",
		"server.write_timeout":       "15s",
		"server.idle_timeout":        "60s",
		"server.request_timeout":     "12s",
		"identity.client_version":    "1",
		"identity.timeout":           "5s",
		"checkout.timeout":           "5s",
		"checkout.expire_after":      1200,
		"checkout.flow_type":         "PG_CHECKOUT",
		"checkout.message":           "Payment for your order",
		"logger.level":               "info",
		"logger.format":              "text",
		"logger.max_body_bytes":      512,
		"worker.token_warm_interval": "0s",
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	if path := os.Getenv(configFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			logger.Error("failed to load config file", "path", path, "error", err)
			return nil, err
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
