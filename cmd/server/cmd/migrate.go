package cmd

import (
	"fmt"

	"github.com/cropcraft/server/internal/config"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Install the database schema and exit",
	Long: `Apply the embedded schema migrations to the store named by DATABASE_URL.

Running it against an up-to-date database is a no-op. serve performs the same
step on startup; this command exists for deploy pipelines that migrate before
rolling out new server instances.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		logger := config.NewLoggerTo(cmd.ErrOrStderr(), cfg.Logging)

		store, err := openStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		store.Close()

		fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
		return nil
	},
}
