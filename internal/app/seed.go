package app

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/maxviazov/pets-service/internal/service"
)

// SeedOptions sizes a generated demo dataset.
type SeedOptions struct {
	Cats   int
	Dogs   int
	Owners int
	// MaxPets caps how many cats and how many dogs one owner references.
	MaxPets int
	// Seed makes the dataset reproducible; equal seeds give equal data.
	Seed uint64
}

// SeedResult counts what was written.
type SeedResult struct {
	Cats   int
	Dogs   int
	Owners int
}

var (
	seedNames  = []string{"Luna", "Milo", "Bella", "Oliver", "Coco", "Max", "Nala", "Simba", "Rex", "Daisy", "Leo", "Bolt"}
	catBreeds  = []string{"Siamese", "Persian", "Maine Coon", "Sphynx", "Bengal"}
	dogBreeds  = []string{"Beagle", "Labrador", "Poodle", "Husky", "Corgi"}
	ownerNames = []string{"Ann", "Ben", "Clara", "Dan", "Eva", "Finn", "Gina", "Hugo"}
)

// Seed fills the app's store with random cats, dogs and owners in one
// transaction. Owners only reference pets created in the same run.
func (a *App) Seed(ctx context.Context, opts SeedOptions) (SeedResult, error) {
	rnd := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	var res SeedResult

	err := a.store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		catIDs := make([]string, 0, opts.Cats)
		for i := 0; i < opts.Cats; i++ {
			c, err := a.pets.CreateCat(ctx, service.CreateCatInput{
				Name:            pick(rnd, seedNames),
				Age:             rnd.IntN(20),
				Breed:           pick(rnd, catBreeds),
				Weight:          roundWeight(2 + rnd.Float64()*6),
				HasClippedClaws: maybeBool(rnd),
			})
			if err != nil {
				return fmt.Errorf("seed cat %d: %w", i, err)
			}
			catIDs = append(catIDs, c.ID)
		}

		dogIDs := make([]string, 0, opts.Dogs)
		for i := 0; i < opts.Dogs; i++ {
			d, err := a.pets.CreateDog(ctx, service.CreateDogInput{
				Name:     pick(rnd, seedNames),
				Age:      rnd.IntN(15),
				Breed:    pick(rnd, dogBreeds),
				Weight:   roundWeight(4 + rnd.Float64()*30),
				WagsTail: maybeBool(rnd),
			})
			if err != nil {
				return fmt.Errorf("seed dog %d: %w", i, err)
			}
			dogIDs = append(dogIDs, d.ID)
		}

		for i := 0; i < opts.Owners; i++ {
			o, err := a.owners.CreateOwner(ctx, service.CreateOwnerInput{
				Name: pick(rnd, ownerNames),
				Age:  18 + rnd.IntN(60),
				Cats: sample(rnd, catIDs, opts.MaxPets),
				Dogs: sample(rnd, dogIDs, opts.MaxPets),
			})
			if err != nil {
				return fmt.Errorf("seed owner %d: %w", i, err)
			}
			a.log.Debug().Str("owner_id", o.ID).Int("pets", o.PetsCount()).Msg("seeded owner")
		}

		res = SeedResult{Cats: len(catIDs), Dogs: len(dogIDs), Owners: opts.Owners}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	a.log.Info().Int("cats", res.Cats).Int("dogs", res.Dogs).Int("owners", res.Owners).Msg("store seeded")
	return res, nil
}

func pick(rnd *rand.Rand, from []string) string { return from[rnd.IntN(len(from))] }

// maybeBool leaves roughly a third of the flags unset.
func maybeBool(rnd *rand.Rand) *bool {
	switch rnd.IntN(3) {
	case 0:
		return nil
	case 1:
		v := true
		return &v
	default:
		v := false
		return &v
	}
}

func roundWeight(w float64) float64 { return float64(int(w*10)) / 10 }

// sample draws up to limit ids without replacement.
func sample(rnd *rand.Rand, ids []string, limit int) []string {
	if len(ids) == 0 || limit <= 0 {
		return []string{}
	}
	n := rnd.IntN(min(limit, len(ids)) + 1)
	out := make([]string, 0, n)
	for _, i := range rnd.Perm(len(ids))[:n] {
		out = append(out, ids[i])
	}
	return out
}
