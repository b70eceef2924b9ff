package cli

import (
	"errors"
	"fmt"

	"github.com/maxviazov/pets-service/internal/app"
	"github.com/maxviazov/pets-service/internal/config"
	"github.com/spf13/cobra"
)

// NewSeedCommand writes a random demo dataset into a persistent store.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := app.SeedOptions{Cats: 20, Dogs: 20, Owners: 10, MaxPets: 3}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert random cats, dogs and owners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := rootOpts.load()
			if err != nil {
				return err
			}
			if cfg.Storage.Driver == config.DriverMemory {
				return errors.New("seed needs a persistent driver; use serve --seed-owners with memory")
			}

			ctx := runContext(cmd)
			a, err := app.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Seed(ctx, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d cats, %d dogs, %d owners\n", res.Cats, res.Dogs, res.Owners)
			return nil
		},
	}

	addSeedFlags(cmd, &opts, "")
	return cmd
}

func addSeedFlags(cmd *cobra.Command, opts *app.SeedOptions, prefix string) {
	f := cmd.Flags()
	f.IntVar(&opts.Cats, prefix+"cats", opts.Cats, "number of cats to create")
	f.IntVar(&opts.Dogs, prefix+"dogs", opts.Dogs, "number of dogs to create")
	f.IntVar(&opts.Owners, prefix+"owners", opts.Owners, "number of owners to create")
	f.IntVar(&opts.MaxPets, prefix+"max-pets", max(opts.MaxPets, 3), "max cats and max dogs referenced per owner")
	f.Uint64Var(&opts.Seed, prefix+"random-seed", opts.Seed, "random seed for reproducible data")
}
