package cmd

import (
	"fmt"
	"time"

	"github.com/cropcraft/server/internal/auth"
	"github.com/spf13/cobra"
)

var tokenExpiry time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token <username>",
	Short: "Mint an admin bearer token",
	Long: `Sign a bearer token for the given username with the configured JWT_SECRET.

Useful for demos, smoke tests and scripts that call the admin endpoints.
The username is not looked up; anyone holding the secret can already mint
tokens.

Examples:
  # Token valid for the configured expiry (JWT_EXPIRY_HOURS)
  server token alice

  # Short-lived token
  server token alice --expiry 15m`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}

		expiry := cfg.Auth.JWTExpiry
		if tokenExpiry > 0 {
			expiry = tokenExpiry
		}

		token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, expiry, cfg.Auth.Issuer).Generate(args[0])
		if err != nil {
			return fmt.Errorf("generate token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenExpiry, "expiry", 0, "token lifetime (default: JWT_EXPIRY_HOURS)")
}
