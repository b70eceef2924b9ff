// Package contract holds backend-agnostic test suites. Every storage
// backend runs the same suites from its own _test.go file.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/maxviazov/pets-service/internal/model"
	"github.com/maxviazov/pets-service/internal/repository"
)

type CatFactory func(t *testing.T) (repository.CatRepository, func())

type DogFactory func(t *testing.T) (repository.DogRepository, func())

type OwnerFactory func(t *testing.T) (repository.OwnerRepository, func())

type TxFactory func(t *testing.T) (tx repository.TxManager, cats repository.CatRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

// petFixture adapts the shared pet suite to one concrete collection.
type petFixture[T any] struct {
	newRepo func(t *testing.T) (repository.PetRepository[T], func())
	build   func(name string, weight float64) T
	id      func(T) string
	name    func(T) string
}

func boolPtr(b bool) *bool { return &b }

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, name(it))
	}
	return out
}

func equalNames(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func runPetContract[T any](t *testing.T, fx petFixture[T]) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := fx.newRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, fx.build("Tom", 4.5))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, fx.id(created))
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if fx.id(got) != fx.id(created) || fx.name(got) != "Tom" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := fx.newRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), uuid.NewString())
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create_duplicate_id", func(t *testing.T) {
		repo, cleanup := fx.newRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		first, err := repo.Create(ctx, fx.build("Dup", 1))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err = repo.Create(ctx, first)
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("list_insertion_order_and_total", func(t *testing.T) {
		repo, cleanup := fx.newRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var want []string
		for i := 0; i < 7; i++ {
			name := fmt.Sprintf("P-%d", i)
			want = append(want, name)
			if _, err := repo.Create(ctx, fx.build(name, 1)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 7 || !equalNames(names(res.Items, fx.name), want[:3]) {
			t.Fatalf("unexpected page: %v total=%d", names(res.Items, fx.name), res.Total)
		}
		res, err = repo.List(ctx, repository.Page{Limit: 3, Offset: 6})
		if err != nil {
			t.Fatalf("list tail: %v", err)
		}
		if res.Total != 7 || !equalNames(names(res.Items, fx.name), want[6:]) {
			t.Fatalf("unexpected tail: %v total=%d", names(res.Items, fx.name), res.Total)
		}
	})

	t.Run("list_past_end_keeps_total", func(t *testing.T) {
		repo, cleanup := fx.newRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 4; i++ {
			if _, err := repo.Create(ctx, fx.build(fmt.Sprintf("P-%d", i), 1)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 12})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 0 || res.Total != 4 {
			t.Fatalf("expected empty page with total 4, got len=%d total=%d", len(res.Items), res.Total)
		}
	})

	t.Run("list_limit_larger_than_collection", func(t *testing.T) {
		repo, cleanup := fx.newRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		huge := repository.Page{Limit: 1 << 50}
		res, err := repo.List(ctx, huge)
		if err != nil || len(res.Items) != 0 || res.Total != 0 {
			t.Fatalf("expected empty page, got len=%d total=%d err=%v", len(res.Items), res.Total, err)
		}
		for _, name := range []string{"A", "B"} {
			if _, err := repo.Create(ctx, fx.build(name, 1)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err = repo.List(ctx, huge)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 2 || !equalNames(names(res.Items, fx.name), []string{"A", "B"}) {
			t.Fatalf("unexpected page: %v total=%d", names(res.Items, fx.name), res.Total)
		}
	})

	t.Run("get_by_ids_skips_unknown", func(t *testing.T) {
		repo, cleanup := fx.newRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		a, err := repo.Create(ctx, fx.build("A", 1))
		if err != nil {
			t.Fatalf("seed a: %v", err)
		}
		if _, err := repo.Create(ctx, fx.build("B", 1)); err != nil {
			t.Fatalf("seed b: %v", err)
		}
		c, err := repo.Create(ctx, fx.build("C", 1))
		if err != nil {
			t.Fatalf("seed c: %v", err)
		}
		got, err := repo.GetByIDs(ctx, []string{fx.id(c), uuid.NewString(), fx.id(a)})
		if err != nil {
			t.Fatalf("get by ids: %v", err)
		}
		if !equalNames(names(got, fx.name), []string{"A", "C"}) {
			t.Fatalf("unexpected records: %v", names(got, fx.name))
		}
		empty, err := repo.GetByIDs(ctx, nil)
		if err != nil || len(empty) != 0 {
			t.Fatalf("expected empty result, got %v err=%v", empty, err)
		}
	})

	t.Run("total_weight", func(t *testing.T) {
		repo, cleanup := fx.newRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		sum, err := repo.TotalWeight(ctx)
		if err != nil || sum != 0 {
			t.Fatalf("expected 0 on empty collection, got %v err=%v", sum, err)
		}
		for _, w := range []float64{2, 3, 5} {
			if _, err := repo.Create(ctx, fx.build("W", w)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		sum, err = repo.TotalWeight(ctx)
		if err != nil || sum != 10 {
			t.Fatalf("expected 10, got %v err=%v", sum, err)
		}
	})
}

func RunCatRepositoryContract(t *testing.T, makeRepo CatFactory) {
	t.Helper()
	runPetContract(t, petFixture[model.Cat]{
		newRepo: func(t *testing.T) (repository.PetRepository[model.Cat], func()) {
			return makeRepo(t)
		},
		build: func(name string, weight float64) model.Cat {
			return model.Cat{ID: uuid.NewString(), Name: name, Age: 2, Breed: "Siamese", Weight: weight}
		},
		id:   func(c model.Cat) string { return c.ID },
		name: func(c model.Cat) string { return c.Name },
	})

	t.Run("optional_flag_round_trip", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		set, err := repo.Create(ctx, model.Cat{ID: uuid.NewString(), Name: "Clipped", HasClippedClaws: boolPtr(true)})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		unset, err := repo.Create(ctx, model.Cat{ID: uuid.NewString(), Name: "Unknown"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := repo.GetByID(ctx, set.ID)
		if err != nil || got.HasClippedClaws == nil || !*got.HasClippedClaws {
			t.Fatalf("expected hasClippedClaws=true, got %+v err=%v", got, err)
		}
		got, err = repo.GetByID(ctx, unset.ID)
		if err != nil || got.HasClippedClaws != nil {
			t.Fatalf("expected hasClippedClaws unset, got %+v err=%v", got, err)
		}
	})
}

func RunDogRepositoryContract(t *testing.T, makeRepo DogFactory) {
	t.Helper()
	runPetContract(t, petFixture[model.Dog]{
		newRepo: func(t *testing.T) (repository.PetRepository[model.Dog], func()) {
			return makeRepo(t)
		},
		build: func(name string, weight float64) model.Dog {
			return model.Dog{ID: uuid.NewString(), Name: name, Age: 3, Breed: "Beagle", Weight: weight}
		},
		id:   func(d model.Dog) string { return d.ID },
		name: func(d model.Dog) string { return d.Name },
	})

	t.Run("happy_names", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		got, err := repo.HappyNames(ctx)
		if err != nil || got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil list, got %v err=%v", got, err)
		}
		seed := []model.Dog{
			{Name: "Rex", WagsTail: boolPtr(true)},
			{Name: "Grumpy", WagsTail: boolPtr(false)},
			{Name: "Quiet"},
			{Name: "Rex", WagsTail: boolPtr(true)},
			{Name: "Bolt", WagsTail: boolPtr(true)},
		}
		for _, d := range seed {
			d.ID = uuid.NewString()
			if _, err := repo.Create(ctx, d); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		got, err = repo.HappyNames(ctx)
		if err != nil {
			t.Fatalf("happy names: %v", err)
		}
		if !equalNames(got, []string{"Rex", "Rex", "Bolt"}) {
			t.Fatalf("unexpected names: %v", got)
		}
	})
}

func RunOwnerRepositoryContract(t *testing.T, makeRepo OwnerFactory) {
	t.Helper()

	mkOwner := func(name string, age, cats, dogs int) model.Owner {
		o := model.Owner{ID: uuid.NewString(), Name: name, Age: age, Cats: []string{}, Dogs: []string{}}
		for i := 0; i < cats; i++ {
			o.Cats = append(o.Cats, uuid.NewString())
		}
		for i := 0; i < dogs; i++ {
			o.Dogs = append(o.Dogs, uuid.NewString())
		}
		return o
	}

	t.Run("create_and_get_keeps_reference_order", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		in := model.Owner{ID: uuid.NewString(), Name: "Ann", Age: 30, Cats: []string{"c2", "c1", "c2"}}
		if _, err := repo.Create(ctx, in); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := repo.GetByID(ctx, in.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !equalNames(got.Cats, in.Cats) || got.Dogs == nil || len(got.Dogs) != 0 {
			t.Fatalf("unexpected references: cats=%v dogs=%v", got.Cats, got.Dogs)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), uuid.NewString())
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("top_by_pet_count", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seed := []model.Owner{
			mkOwner("o1", 30, 2, 1),
			mkOwner("o2", 30, 1, 0),
			mkOwner("o3", 30, 0, 3),
			mkOwner("o4", 30, 2, 2),
			mkOwner("other-age", 31, 5, 5),
		}
		for _, o := range seed {
			if _, err := repo.Create(ctx, o); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		got, err := repo.TopByPetCount(ctx, 30, 3)
		if err != nil {
			t.Fatalf("top: %v", err)
		}
		name := func(o model.Owner) string { return o.Name }
		if !equalNames(names(got, name), []string{"o4", "o1", "o3"}) {
			t.Fatalf("unexpected ranking: %v", names(got, name))
		}
		// The tie at the cut keeps the owner inserted first.
		got, err = repo.TopByPetCount(ctx, 30, 2)
		if err != nil {
			t.Fatalf("top: %v", err)
		}
		if !equalNames(names(got, name), []string{"o4", "o1"}) {
			t.Fatalf("unexpected tie break: %v", names(got, name))
		}
		got, err = repo.TopByPetCount(ctx, 99, 3)
		if err != nil || len(got) != 0 {
			t.Fatalf("expected no owners, got %v err=%v", got, err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, cats, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id := uuid.NewString()
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := cats.Create(ctx, model.Cat{ID: id, Name: "TxCommit"})
			return err
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := cats.GetByID(ctx, id); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, cats, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id := uuid.NewString()
		errMarker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := cats.Create(ctx, model.Cat{ID: id, Name: "TxRollback"}); err != nil {
				return err
			}
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := cats.GetByID(ctx, id); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})

	t.Run("nested_joins_outer", func(t *testing.T) {
		tx, cats, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id := uuid.NewString()
		errMarker := errors.New("outer failed")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := tx.WithinTx(ctx, func(ctx context.Context) error {
				_, err := cats.Create(ctx, model.Cat{ID: id, Name: "Inner"})
				return err
			}); err != nil {
				return err
			}
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := cats.GetByID(ctx, id); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected inner insert rolled back, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
