package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/DanielPopoola/checkout-relay/internal/app"
	"github.com/DanielPopoola/checkout-relay/internal/application/services"
	"github.com/DanielPopoola/checkout-relay/internal/config"
	"github.com/DanielPopoola/checkout-relay/internal/domain"
)

var Version = "dev"

type tokenCache interface {
	Current(ctx context.Context) (domain.AccessToken, error)
}

type paymentService interface {
	CreatePayment(ctx context.Context, cmd services.CreatePaymentCommand) (json.RawMessage, error)
	GetPaymentStatus(ctx context.Context, merchantOrderID string) (*domain.PaymentStatus, error)
}

type deps struct {
	tokens   tokenCache
	payments paymentService
}

type loader func() (*deps, error)

func loadDeps() (*deps, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logs go to stderr so command output stays parseable.
	logger := cfg.Logger.NewLoggerTo(os.Stderr)
	relay := app.New(cfg, logger)

	return &deps{tokens: relay.Tokens, payments: relay.Payments}, nil
}

func main() {
	if err := newRootCmd(loadDeps).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(load loader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "relayctl",
		Short:         "relayctl - operate the checkout relay from a terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(tokenCmd(load))
	rootCmd.AddCommand(createCmd(load))
	rootCmd.AddCommand(statusCmd(load))

	return rootCmd
}

func printJSON(w io.Writer, raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
