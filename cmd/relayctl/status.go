package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/DanielPopoola/checkout-relay/internal/domain"
)

func statusCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [merchantOrderId]",
		Short: "Show the processor status of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wait, _ := cmd.Flags().GetBool("wait")
			interval, _ := cmd.Flags().GetDuration("interval")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			d, err := load()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if wait {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			status, err := pollStatus(ctx, d.payments, args[0], wait, interval)
			if err != nil {
				return fmt.Errorf("status check failed: %w", err)
			}

			return printStatus(cmd.OutOrStdout(), status)
		},
	}

	cmd.Flags().Bool("wait", false, "Poll until the order reaches a terminal state")
	cmd.Flags().Duration("interval", 3*time.Second, "Polling interval with --wait")
	cmd.Flags().Duration("timeout", 5*time.Minute, "Give up waiting after this long")

	return cmd
}

func pollStatus(ctx context.Context, payments paymentService, orderID string, wait bool, interval time.Duration) (*domain.PaymentStatus, error) {
	for {
		status, err := payments.GetPaymentStatus(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if !wait || status.State.IsTerminal() {
			return status, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}

func printStatus(w io.Writer, status *domain.PaymentStatus) error {
	fmt.Fprintf(w, "State:    %s (%s)\n", status.State, domain.StatusClass(status.State))
	fmt.Fprintf(w, "Order ID: %s\n", status.OrderID)
	fmt.Fprintf(w, "Amount:   %s\n", status.DisplayAmount())
	fmt.Fprintln(w, "\nDetails:")
	return printJSON(w, status.Raw)
}
