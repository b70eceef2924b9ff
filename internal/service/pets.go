package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maxviazov/pets-service/internal/model"
	"github.com/maxviazov/pets-service/internal/repository"
	"github.com/rs/zerolog"
)

// petService holds cat/dog use-case logic: validation + orchestration, no transport / SQL details.
type petService struct {
	cats repository.CatRepository
	dogs repository.DogRepository
	log  zerolog.Logger
}

func NewPetService(cats repository.CatRepository, dogs repository.DogRepository, logger zerolog.Logger) PetService {
	l := logger.With().Str("module", "service").Str("component", "pets").Logger()
	return &petService{cats: cats, dogs: dogs, log: l}
}

func (s *petService) CreateCat(ctx context.Context, in CreateCatInput) (model.Cat, error) {
	start := time.Now()
	in.Name = strings.TrimSpace(in.Name)
	in.Breed = strings.TrimSpace(in.Breed)
	if err := validateStruct(in); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("cat validation failed")
		return model.Cat{}, err
	}

	out, err := s.cats.Create(ctx, model.Cat{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Age:             in.Age,
		Breed:           in.Breed,
		Weight:          in.Weight,
		HasClippedClaws: in.HasClippedClaws,
	})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("name", in.Name).Msg("create cat failed")
		return model.Cat{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("cat_id", out.ID).Msg("cat created")
	return out, nil
}

func (s *petService) CreateDog(ctx context.Context, in CreateDogInput) (model.Dog, error) {
	start := time.Now()
	in.Name = strings.TrimSpace(in.Name)
	in.Breed = strings.TrimSpace(in.Breed)
	if err := validateStruct(in); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("dog validation failed")
		return model.Dog{}, err
	}

	out, err := s.dogs.Create(ctx, model.Dog{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Age:      in.Age,
		Breed:    in.Breed,
		Weight:   in.Weight,
		WagsTail: in.WagsTail,
	})
	if err != nil {
		s.log.Error().Err(err).Str("name", in.Name).Msg("create dog failed")
		return model.Dog{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("dog_id", out.ID).Msg("dog created")
	return out, nil
}

func (s *petService) GetCat(ctx context.Context, id string) (model.Cat, error) {
	if err := trimmedID("id", id); err != nil {
		return model.Cat{}, err
	}
	return s.cats.GetByID(ctx, strings.TrimSpace(id))
}

func (s *petService) GetDog(ctx context.Context, id string) (model.Dog, error) {
	if err := trimmedID("id", id); err != nil {
		return model.Dog{}, err
	}
	return s.dogs.GetByID(ctx, strings.TrimSpace(id))
}

func (s *petService) CatsWeight(ctx context.Context) (float64, error) {
	sum, err := s.cats.TotalWeight(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("sum cat weight failed")
		return 0, err
	}
	return sum, nil
}

func (s *petService) DogsWeight(ctx context.Context) (float64, error) {
	sum, err := s.dogs.TotalWeight(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("sum dog weight failed")
		return 0, err
	}
	return sum, nil
}

// HappyDogs keeps duplicate names: two happy dogs called Rex are two entries.
func (s *petService) HappyDogs(ctx context.Context) ([]string, error) {
	names, err := s.dogs.HappyNames(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list happy dogs failed")
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
