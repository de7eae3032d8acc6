// Package app wires the relay's collaborators from configuration. Both the
// server and the operator CLI build on it.
package app

import (
	"log/slog"

	"github.com/DanielPopoola/checkout-relay/internal/application/services"
	"github.com/DanielPopoola/checkout-relay/internal/config"
	"github.com/DanielPopoola/checkout-relay/internal/infrastructure/checkout"
	"github.com/DanielPopoola/checkout-relay/internal/infrastructure/identity"
)

type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Tokens   *services.TokenProvider
	Payments *services.PaymentService
}

func New(cfg *config.Config, logger *slog.Logger) *App {
	maxBody := cfg.Logger.MaxBodyBytes

	identityClient := identity.NewIdentityClient(cfg.Identity, logger, maxBody)
	checkoutClient := checkout.NewCheckoutClient(cfg.Checkout, logger, maxBody)

	tokens := services.NewTokenProvider(identityClient, cfg.Identity.Timeout, logger)
	payments := services.NewPaymentService(tokens, checkoutClient, cfg.Checkout, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Tokens:   tokens,
		Payments: payments,
	}
}
