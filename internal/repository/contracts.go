package repository

import (
	"context"

	"github.com/maxviazov/pets-service/internal/model"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc runs with a context that carries the active transaction.
type TxFunc func(ctx context.Context) error

// TxManager runs fn in one transaction. Repositories called with the
// context passed to fn join that transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// PetRepository declares the operations shared by the cat and dog collections.
// Every listing is in insertion order; that order is what pagination slices.
type PetRepository[T any] interface {
	Create(ctx context.Context, pet T) (T, error)
	GetByID(ctx context.Context, id string) (T, error)
	// GetByIDs returns the records matching ids, in insertion order.
	// Unknown ids are skipped, not reported.
	GetByIDs(ctx context.Context, ids []string) ([]T, error)
	List(ctx context.Context, p Page) (PageResult[T], error)
	TotalWeight(ctx context.Context) (float64, error)
}

// CatRepository declares persistence operations for cats.
type CatRepository interface {
	PetRepository[model.Cat]
}

// DogRepository declares persistence operations for dogs.
type DogRepository interface {
	PetRepository[model.Dog]
	// HappyNames returns names of dogs with wagsTail == true, duplicates kept.
	HappyNames(ctx context.Context) ([]string, error)
}

// OwnerRepository declares persistence operations for owners.
type OwnerRepository interface {
	Create(ctx context.Context, o model.Owner) (model.Owner, error)
	GetByID(ctx context.Context, id string) (model.Owner, error)
	// TopByPetCount returns owners of exactly the given age, ordered by
	// len(cats)+len(dogs) descending and then by insertion, cut to limit.
	TopByPetCount(ctx context.Context, age, limit int) ([]model.Owner, error)
}

// Store bundles one backend's repositories so wiring code can swap backends in one place.
type Store struct {
	Cats   CatRepository
	Dogs   DogRepository
	Owners OwnerRepository
	Tx     TxManager
	Pinger Pinger
	Close  func()
}
