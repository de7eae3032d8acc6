package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func tokenCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Exchange client credentials and show the token expiry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := load()
			if err != nil {
				return err
			}

			token, err := d.tokens.Current(cmd.Context())
			if err != nil {
				return fmt.Errorf("token exchange failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Token:      %s\n", maskToken(token.Value))
			fmt.Fprintf(out, "Expires at: %s\n", token.ExpiryTime().UTC().Format(time.RFC3339))
			return nil
		},
	}
}

// maskToken keeps only the first and last four characters.
func maskToken(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
}
