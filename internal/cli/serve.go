package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/maxviazov/pets-service/internal/app"
	"github.com/spf13/cobra"
)

// NewServeCommand starts the HTTP server and blocks until SIGINT or SIGTERM.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var seed app.SeedOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API on app.port.

With the memory driver the store starts empty; --seed-owners and friends
fill it with random data before the listener opens.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := rootOpts.load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, log)
			if err != nil {
				log.Error().Err(err).Msg("startup failed")
				return err
			}
			defer a.Close()

			if seed.Cats+seed.Dogs+seed.Owners > 0 {
				if _, err := a.Seed(ctx, seed); err != nil {
					return err
				}
			}
			return a.Run(ctx)
		},
	}

	addSeedFlags(cmd, &seed, "seed-")
	return cmd
}

// runContext gives commands a context even when executed without one.
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
