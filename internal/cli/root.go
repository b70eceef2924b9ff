// Package cli holds the cobra command tree for the pets-service binary.
package cli

import (
	"fmt"

	"github.com/maxviazov/pets-service/internal/config"
	"github.com/maxviazov/pets-service/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Driver     string
}

// NewRootCommand creates the root command with serve, migrate and seed attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pets-service",
		Short: "Cats, dogs and their owners over HTTP",
		Long: `pets-service stores cats, dogs and owners and serves them over a REST API.

Storage is selected with storage.driver (memory, postgres or sqlite) in the
config file or with APP_STORAGE_DRIVER.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "override storage.driver (memory|postgres|sqlite)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// load reads config and builds the logger shared by every subcommand.
func (o *RootOptions) load() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	if o.Driver != "" {
		cfg.Storage.Driver = o.Driver
		if err := cfg.Validate(); err != nil {
			return nil, zerolog.Logger{}, fmt.Errorf("invalid config: %w", err)
		}
	}

	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.App.Env
	}
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("logger initialization failed: %w", err)
	}
	return cfg, log, nil
}
