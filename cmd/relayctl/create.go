package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DanielPopoola/checkout-relay/internal/application/services"
)

func createCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a checkout session for an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, _ := cmd.Flags().GetString("order-id")
			amount, _ := cmd.Flags().GetString("amount")
			redirectBase, _ := cmd.Flags().GetString("redirect-base")

			d, err := load()
			if err != nil {
				return err
			}

			body, err := d.payments.CreatePayment(cmd.Context(), services.CreatePaymentCommand{
				MerchantOrderID: orderID,
				Amount:          amount,
				RedirectBaseURL: redirectBase,
			})
			if err != nil {
				return fmt.Errorf("create payment failed: %w", err)
			}

			return printJSON(cmd.OutOrStdout(), body)
		},
	}

	cmd.Flags().String("order-id", "", "Merchant order id (unique per attempt)")
	cmd.Flags().String("amount", "", "Amount in major units, e.g. 499.50")
	cmd.Flags().String("redirect-base", "http://localhost:5000", "Base URL of the relay used in the redirect link")
	_ = cmd.MarkFlagRequired("order-id")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
