package service

import (
	"context"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maxviazov/pets-service/internal/model"
	"github.com/maxviazov/pets-service/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// topOwnersLimit is how many owners the ranking keeps before grouping.
const topOwnersLimit = 3

type ownerService struct {
	owners repository.OwnerRepository
	cats   repository.CatRepository
	dogs   repository.DogRepository
	log    zerolog.Logger
}

func NewOwnerService(owners repository.OwnerRepository, cats repository.CatRepository, dogs repository.DogRepository, logger zerolog.Logger) OwnerService {
	l := logger.With().Str("module", "service").Str("component", "owners").Logger()
	return &ownerService{owners: owners, cats: cats, dogs: dogs, log: l}
}

func (s *ownerService) CreateOwner(ctx context.Context, in CreateOwnerInput) (model.Owner, error) {
	start := time.Now()
	in.Name = strings.TrimSpace(in.Name)
	in.Cats = trimIDs(in.Cats)
	in.Dogs = trimIDs(in.Dogs)
	if err := validateStruct(in); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("owner validation failed")
		return model.Owner{}, err
	}

	out, err := s.owners.Create(ctx, model.Owner{
		ID:   uuid.NewString(),
		Name: in.Name,
		Age:  in.Age,
		Cats: in.Cats,
		Dogs: in.Dogs,
	})
	if err != nil {
		s.log.Error().Err(err).Str("name", in.Name).Msg("create owner failed")
		return model.Owner{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("owner_id", out.ID).Int("pets", out.PetsCount()).Msg("owner created")
	return out, nil
}

func (s *ownerService) GetOwner(ctx context.Context, id string) (model.Owner, error) {
	if err := trimmedID("id", id); err != nil {
		return model.Owner{}, err
	}
	return s.owners.GetByID(ctx, strings.TrimSpace(id))
}

// TopOwnersAtAge ranks owners of the given age by pet count, keeps the first
// three owners and groups them by count, largest first. Pet ids that do not
// resolve are left out of the owner view but still count toward petsCount.
func (s *ownerService) TopOwnersAtAge(ctx context.Context, age int) ([]model.TopOwnersGroup, error) {
	if age < 0 {
		return nil, NewInvalidInputError([]FieldError{{Field: "age", Message: "must be >= 0"}})
	}
	if age > math.MaxInt32 {
		// No stored owner can be this old; every backend keeps age as a 32-bit integer.
		return []model.TopOwnersGroup{}, nil
	}

	owners, err := s.owners.TopByPetCount(ctx, age, topOwnersLimit)
	if err != nil {
		s.log.Error().Err(err).Int("age", age).Msg("rank owners failed")
		return nil, err
	}
	groups := []model.TopOwnersGroup{}
	if len(owners) == 0 {
		return groups, nil
	}
	slices.SortStableFunc(owners, func(a, b model.Owner) int { return b.PetsCount() - a.PetsCount() })

	cats, dogs, err := s.resolvePets(ctx, owners)
	if err != nil {
		return nil, err
	}

	for _, o := range owners {
		view := model.OwnerView{
			ID:   o.ID,
			Name: o.Name,
			Age:  o.Age,
			Cats: pick(o.Cats, cats, catID),
			Dogs: pick(o.Dogs, dogs, dogID),
		}
		n := o.PetsCount()
		if len(groups) == 0 || groups[len(groups)-1].PetsCount != n {
			groups = append(groups, model.TopOwnersGroup{PetsCount: n, Owners: []model.OwnerView{}})
		}
		last := &groups[len(groups)-1]
		last.Owners = append(last.Owners, view)
	}
	return groups, nil
}

// resolvePets batch-fetches every referenced pet, one lookup per collection.
// Both slices come back in insertion order.
func (s *ownerService) resolvePets(ctx context.Context, owners []model.Owner) ([]model.Cat, []model.Dog, error) {
	var catIDs, dogIDs []string
	for _, o := range owners {
		catIDs = append(catIDs, o.Cats...)
		dogIDs = append(dogIDs, o.Dogs...)
	}

	var cats []model.Cat
	var dogs []model.Dog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cats, err = s.cats.GetByIDs(gctx, uniqueIDs(catIDs))
		return err
	})
	g.Go(func() error {
		var err error
		dogs, err = s.dogs.GetByIDs(gctx, uniqueIDs(dogIDs))
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Int("cat_refs", len(catIDs)).Int("dog_refs", len(dogIDs)).Msg("resolve owner pets failed")
		return nil, nil, err
	}
	return cats, dogs, nil
}

// pick keeps the records whose id the owner references, in collection order.
// Unknown ids match nothing and a repeated id still matches one record.
func pick[T any](ids []string, records []T, id func(T) string) []T {
	refs := make(map[string]struct{}, len(ids))
	for _, ref := range ids {
		refs[ref] = struct{}{}
	}
	out := make([]T, 0, min(len(refs), len(records)))
	for _, r := range records {
		if _, ok := refs[id(r)]; ok {
			out = append(out, r)
		}
	}
	return out
}

func catID(c model.Cat) string { return c.ID }

func dogID(d model.Dog) string { return d.ID }

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func trimIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strings.TrimSpace(id))
	}
	return out
}
