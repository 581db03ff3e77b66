package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"organizerdashboard/internal/adapters/auth"
)

var (
	tokenEmail  string
	tokenExpiry time.Duration
)

// tokenCmd signs an operator token for local development.
var tokenCmd = &cobra.Command{
	Use:   "token <operator-id>",
	Short: "Sign a development operator token with JWT_SECRET",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			return errors.New("JWT_SECRET is required")
		}
		tok, err := auth.SignToken(secret, args[0], tokenEmail, tokenExpiry)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "operator email")
	tokenCmd.Flags().DurationVar(&tokenExpiry, "expiry", 12*time.Hour, "token lifetime")
}
