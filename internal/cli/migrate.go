package cli

import (
	"fmt"

	"github.com/maxviazov/pets-service/internal/app"
	"github.com/maxviazov/pets-service/internal/config"
	"github.com/spf13/cobra"
)

// NewMigrateCommand applies the embedded schema migrations and exits.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the configured driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := rootOpts.load()
			if err != nil {
				return err
			}
			if cfg.Storage.Driver == config.DriverMemory {
				fmt.Fprintln(cmd.OutOrStdout(), "memory driver has no schema; nothing to migrate")
				return nil
			}

			cfg.Storage.AutoMigrate = true
			store, err := app.OpenStore(runContext(cmd), cfg, log)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			store.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", cfg.Storage.Driver)
			return nil
		},
	}
}
