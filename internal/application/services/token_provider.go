package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/DanielPopoola/checkout-relay/internal/application"
	"github.com/DanielPopoola/checkout-relay/internal/domain"
)

const refreshKey = "access_token"

// TokenProvider caches the processor access token and refreshes it once it has
// expired. Concurrent callers that observe an expired token share one exchange.
type TokenProvider struct {
	client  application.IdentityClient
	timeout time.Duration
	now     func() time.Time
	logger  *slog.Logger

	mu     sync.RWMutex
	cached *domain.AccessToken
	group  singleflight.Group
}

// NewTokenProvider builds a provider. timeout bounds each exchange independently
// of the caller that triggered it; zero means no extra bound.
func NewTokenProvider(client application.IdentityClient, timeout time.Duration, logger *slog.Logger) *TokenProvider {
	return &TokenProvider{
		client:  client,
		timeout: timeout,
		now:     time.Now,
		logger:  logger,
	}
}

// WithClock replaces the time source. Intended for tests.
func (p *TokenProvider) WithClock(now func() time.Time) *TokenProvider {
	p.now = now
	return p
}

var _ application.TokenSource = (*TokenProvider)(nil)

func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	token, err := p.Current(ctx)
	if err != nil {
		return "", err
	}
	return token.Value, nil
}

// Current returns a copy of the valid token, exchanging credentials if needed.
func (p *TokenProvider) Current(ctx context.Context) (domain.AccessToken, error) {
	if token, ok := p.lookup(); ok {
		return token, nil
	}

	resultCh := p.group.DoChan(refreshKey, func() (any, error) {
		// A flight that finished just before this one started may already have refreshed.
		if token, ok := p.lookup(); ok {
			return token, nil
		}
		return p.refresh(ctx)
	})

	select {
	case <-ctx.Done():
		return domain.AccessToken{}, ctx.Err()
	case res := <-resultCh:
		if res.Err != nil {
			return domain.AccessToken{}, res.Err
		}
		return res.Val.(domain.AccessToken), nil
	}
}

func (p *TokenProvider) lookup() (domain.AccessToken, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.cached.ValidAt(p.now()) {
		return domain.AccessToken{}, false
	}
	return *p.cached, true
}

func (p *TokenProvider) refresh(ctx context.Context) (domain.AccessToken, error) {
	exchangeCtx := context.WithoutCancel(ctx)
	if p.timeout > 0 {
		var cancel context.CancelFunc
		exchangeCtx, cancel = context.WithTimeout(exchangeCtx, p.timeout)
		defer cancel()
	}

	p.logger.Debug("access token expired or missing, exchanging client credentials")

	token, err := p.client.Exchange(exchangeCtx)
	if err != nil {
		p.logger.Error("failed to obtain access token",
			"category", application.CategorizeError(err),
			"error", err,
		)
		return domain.AccessToken{}, err
	}

	p.mu.Lock()
	p.cached = token
	p.mu.Unlock()

	if !token.ValidAt(p.now()) {
		p.logger.Warn("identity endpoint issued a token that is already expired", "expires_at", token.ExpiresAt)
	}

	return *token, nil
}
