package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/checkout-relay/internal/application"
	"github.com/DanielPopoola/checkout-relay/internal/domain"
)

type TokenCache interface {
	Current(ctx context.Context) (domain.AccessToken, error)
}

// TokenWarmer asks the token cache for a token on a fixed interval so that an
// expired token is usually replaced before a request needs it.
type TokenWarmer struct {
	tokens   TokenCache
	interval time.Duration
	logger   *slog.Logger
}

func NewTokenWarmer(tokens TokenCache, interval time.Duration, logger *slog.Logger) *TokenWarmer {
	return &TokenWarmer{
		tokens:   tokens,
		interval: interval,
		logger:   logger,
	}
}

func (w *TokenWarmer) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Info("token warmer disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("starting token warmer", "interval", w.interval)

	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping token warmer")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

// RunOnce executes a single warm cycle.
func (w *TokenWarmer) RunOnce(ctx context.Context) error {
	return w.run(ctx)
}

func (w *TokenWarmer) run(ctx context.Context) error {
	token, err := w.tokens.Current(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		w.logger.Error("token warm failed",
			"category", application.CategorizeError(err),
			"retryable", application.IsRetryable(err),
			"error", err,
		)
		return err
	}

	w.logger.Debug("access token warm",
		"expires_at", token.ExpiryTime(),
		"expires_in", time.Until(token.ExpiryTime()).Round(time.Second),
	)
	return nil
}
