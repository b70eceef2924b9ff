package memory

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"

	"github.com/maxviazov/pets-service/internal/model"
	"github.com/maxviazov/pets-service/internal/repository"
)

var errClosed = errors.New("memory store is closed")

type catRepository struct{ t *table[model.Cat] }

func NewCatRepository() repository.CatRepository {
	return &catRepository{t: newTable(func(c model.Cat) string { return c.ID }, nil)}
}

func (r *catRepository) Create(ctx context.Context, c model.Cat) (model.Cat, error) {
	out, err := r.t.insert(c)
	if err != nil {
		return model.Cat{}, err
	}
	track(ctx, func() { r.t.remove(c.ID) })
	return out, nil
}

func (r *catRepository) GetByID(_ context.Context, id string) (model.Cat, error) {
	return r.t.get(id)
}

func (r *catRepository) GetByIDs(_ context.Context, ids []string) ([]model.Cat, error) {
	return r.t.getMany(ids), nil
}

func (r *catRepository) List(_ context.Context, p repository.Page) (repository.PageResult[model.Cat], error) {
	return r.t.page(p), nil
}

func (r *catRepository) TotalWeight(_ context.Context) (float64, error) {
	var sum float64
	r.t.each(func(c model.Cat) bool { sum += c.Weight; return true })
	return sum, nil
}

type dogRepository struct{ t *table[model.Dog] }

func NewDogRepository() repository.DogRepository {
	return &dogRepository{t: newTable(func(d model.Dog) string { return d.ID }, nil)}
}

func (r *dogRepository) Create(ctx context.Context, d model.Dog) (model.Dog, error) {
	out, err := r.t.insert(d)
	if err != nil {
		return model.Dog{}, err
	}
	track(ctx, func() { r.t.remove(d.ID) })
	return out, nil
}

func (r *dogRepository) GetByID(_ context.Context, id string) (model.Dog, error) {
	return r.t.get(id)
}

func (r *dogRepository) GetByIDs(_ context.Context, ids []string) ([]model.Dog, error) {
	return r.t.getMany(ids), nil
}

func (r *dogRepository) List(_ context.Context, p repository.Page) (repository.PageResult[model.Dog], error) {
	return r.t.page(p), nil
}

func (r *dogRepository) TotalWeight(_ context.Context) (float64, error) {
	var sum float64
	r.t.each(func(d model.Dog) bool { sum += d.Weight; return true })
	return sum, nil
}

func (r *dogRepository) HappyNames(_ context.Context) ([]string, error) {
	names := []string{}
	r.t.each(func(d model.Dog) bool {
		if d.WagsTail != nil && *d.WagsTail {
			names = append(names, d.Name)
		}
		return true
	})
	return names, nil
}

type ownerRepository struct{ t *table[model.Owner] }

func cloneOwner(o model.Owner) model.Owner {
	o.Cats = append([]string{}, o.Cats...)
	o.Dogs = append([]string{}, o.Dogs...)
	return o
}

func NewOwnerRepository() repository.OwnerRepository {
	return &ownerRepository{t: newTable(func(o model.Owner) string { return o.ID }, cloneOwner)}
}

func (r *ownerRepository) Create(ctx context.Context, o model.Owner) (model.Owner, error) {
	out, err := r.t.insert(o)
	if err != nil {
		return model.Owner{}, err
	}
	track(ctx, func() { r.t.remove(o.ID) })
	return out, nil
}

func (r *ownerRepository) GetByID(_ context.Context, id string) (model.Owner, error) {
	return r.t.get(id)
}

func (r *ownerRepository) TopByPetCount(_ context.Context, age, limit int) ([]model.Owner, error) {
	matched := []model.Owner{}
	r.t.each(func(o model.Owner) bool {
		if o.Age == age {
			matched = append(matched, cloneOwner(o))
		}
		return true
	})
	// Stable sort keeps insertion order among equal counts.
	slices.SortStableFunc(matched, func(a, b model.Owner) int {
		return b.PetsCount() - a.PetsCount()
	})
	if limit >= 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

type pinger struct{ closed *atomic.Bool }

func (p pinger) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.closed.Load() {
		return errClosed
	}
	return nil
}

// NewStore builds an empty in-memory store. Close makes Ping fail so
// readiness reports the store as gone during shutdown.
func NewStore() repository.Store {
	closed := &atomic.Bool{}
	return repository.Store{
		Cats:   NewCatRepository(),
		Dogs:   NewDogRepository(),
		Owners: NewOwnerRepository(),
		Tx:     NewTxManager(),
		Pinger: pinger{closed: closed},
		Close:  func() { closed.Store(true) },
	}
}

var (
	_ repository.CatRepository   = (*catRepository)(nil)
	_ repository.DogRepository   = (*dogRepository)(nil)
	_ repository.OwnerRepository = (*ownerRepository)(nil)
)
