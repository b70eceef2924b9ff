// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/pets-service/internal/model"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// PetService defines cat and dog use cases, the unified listing included.
type PetService interface {
	CreateCat(ctx context.Context, in CreateCatInput) (model.Cat, error)
	CreateDog(ctx context.Context, in CreateDogInput) (model.Dog, error)
	GetCat(ctx context.Context, id string) (model.Cat, error)
	GetDog(ctx context.Context, id string) (model.Dog, error)
	// ListPets pages one collection when petType is set, otherwise cats followed by dogs.
	ListPets(ctx context.Context, petType *model.PetType, limit, page int) (model.PetPage, error)
	CatsWeight(ctx context.Context) (float64, error)
	DogsWeight(ctx context.Context) (float64, error)
	HappyDogs(ctx context.Context) ([]string, error)
}

// OwnerService defines owner use cases, the age ranking included.
type OwnerService interface {
	CreateOwner(ctx context.Context, in CreateOwnerInput) (model.Owner, error)
	GetOwner(ctx context.Context, id string) (model.Owner, error)
	TopOwnersAtAge(ctx context.Context, age int) ([]model.TopOwnersGroup, error)
}
