package service_test

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/maxviazov/pets-service/internal/model"
	"github.com/maxviazov/pets-service/internal/repository"
	"github.com/maxviazov/pets-service/internal/repository/memory"
	"github.com/maxviazov/pets-service/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ownerFixture struct {
	owners service.OwnerService
	pets   service.PetService
}

func newOwnerFixture(t *testing.T) ownerFixture {
	t.Helper()
	store := memory.NewStore()
	t.Cleanup(store.Close)
	logger := zerolog.New(io.Discard)
	return ownerFixture{
		owners: service.NewOwnerService(store.Owners, store.Cats, store.Dogs, logger),
		pets:   service.NewPetService(store.Cats, store.Dogs, logger),
	}
}

// addOwner creates an owner holding the given number of freshly created cats and dogs.
func (f ownerFixture) addOwner(t *testing.T, name string, age, cats, dogs int) model.Owner {
	t.Helper()
	ctx := context.Background()
	in := service.CreateOwnerInput{Name: name, Age: age}
	for i := 0; i < cats; i++ {
		c, err := f.pets.CreateCat(ctx, service.CreateCatInput{Name: name + "-cat"})
		require.NoError(t, err)
		in.Cats = append(in.Cats, c.ID)
	}
	for i := 0; i < dogs; i++ {
		d, err := f.pets.CreateDog(ctx, service.CreateDogInput{Name: name + "-dog"})
		require.NoError(t, err)
		in.Dogs = append(in.Dogs, d.ID)
	}
	o, err := f.owners.CreateOwner(ctx, in)
	require.NoError(t, err)
	return o
}

func groupShape(groups []model.TopOwnersGroup) map[int][]string {
	out := map[int][]string{}
	for _, g := range groups {
		for _, o := range g.Owners {
			out[g.PetsCount] = append(out[g.PetsCount], o.Name)
		}
	}
	return out
}

func TestTopOwnersAtAge_GroupsTopThree(t *testing.T) {
	f := newOwnerFixture(t)
	f.addOwner(t, "four", 40, 2, 2)
	f.addOwner(t, "three-a", 40, 3, 0)
	f.addOwner(t, "three-b", 40, 1, 2)
	f.addOwner(t, "one", 40, 1, 0)
	f.addOwner(t, "other-age", 41, 5, 5)

	groups, err := f.owners.TopOwnersAtAge(context.Background(), 40)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, 4, groups[0].PetsCount)
	assert.Equal(t, 3, groups[1].PetsCount)
	assert.Equal(t, map[int][]string{4: {"four"}, 3: {"three-a", "three-b"}}, groupShape(groups))

	four := groups[0].Owners[0]
	assert.Len(t, four.Cats, 2)
	assert.Len(t, four.Dogs, 2)
}

func TestTopOwnersAtAge_BoundaryTieKeepsFirstInserted(t *testing.T) {
	f := newOwnerFixture(t)
	f.addOwner(t, "five", 30, 5, 0)
	f.addOwner(t, "four", 30, 0, 4)
	f.addOwner(t, "two-first", 30, 1, 1)
	f.addOwner(t, "two-second", 30, 2, 0)

	groups, err := f.owners.TopOwnersAtAge(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, map[int][]string{5: {"five"}, 4: {"four"}, 2: {"two-first"}}, groupShape(groups))
}

func TestTopOwnersAtAge_MixedAges(t *testing.T) {
	f := newOwnerFixture(t)
	f.addOwner(t, "owner0", 49, 0, 3)
	f.addOwner(t, "owner1", 50, 3, 0)
	f.addOwner(t, "owner2", 50, 1, 1)
	f.addOwner(t, "owner3", 50, 1, 2)
	f.addOwner(t, "owner4", 50, 1, 1)
	f.addOwner(t, "owner5", 50, 1, 3)

	groups, err := f.owners.TopOwnersAtAge(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, map[int][]string{4: {"owner5"}, 3: {"owner1", "owner3"}}, groupShape(groups))
}

func TestTopOwnersAtAge_ZeroPetsAndFewOwners(t *testing.T) {
	f := newOwnerFixture(t)
	f.addOwner(t, "none", 20, 0, 0)

	groups, err := f.owners.TopOwnersAtAge(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 0, groups[0].PetsCount)
	assert.Empty(t, groups[0].Owners[0].Cats)
	assert.NotNil(t, groups[0].Owners[0].Cats)

	groups, err = f.owners.TopOwnersAtAge(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestTopOwnersAtAge_DanglingAndRepeatedIDs(t *testing.T) {
	f := newOwnerFixture(t)
	ctx := context.Background()
	c1, err := f.pets.CreateCat(ctx, service.CreateCatInput{Name: "first"})
	require.NoError(t, err)
	c2, err := f.pets.CreateCat(ctx, service.CreateCatInput{Name: "second"})
	require.NoError(t, err)

	_, err = f.owners.CreateOwner(ctx, service.CreateOwnerInput{
		Name: "weak",
		Age:  50,
		Cats: []string{c2.ID, "gone", c1.ID, c2.ID},
		Dogs: []string{"also-gone"},
	})
	require.NoError(t, err)

	groups, err := f.owners.TopOwnersAtAge(ctx, 50)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	// Dangling ids still count toward the displayed total.
	assert.Equal(t, 5, groups[0].PetsCount)
	view := groups[0].Owners[0]
	// Resolved cats follow collection order, not the order the owner lists them.
	require.Len(t, view.Cats, 2)
	assert.Equal(t, c1.ID, view.Cats[0].ID)
	assert.Equal(t, c2.ID, view.Cats[1].ID)
	assert.Empty(t, view.Dogs)
}

func TestTopOwnersAtAge_ResolvedPetsInCollectionOrder(t *testing.T) {
	f := newOwnerFixture(t)
	ctx := context.Background()
	var dogs []model.Dog
	for _, name := range []string{"d1", "d2", "d3"} {
		d, err := f.pets.CreateDog(ctx, service.CreateDogInput{Name: name})
		require.NoError(t, err)
		dogs = append(dogs, d)
	}
	_, err := f.owners.CreateOwner(ctx, service.CreateOwnerInput{
		Name: "ann",
		Age:  33,
		Dogs: []string{dogs[2].ID, dogs[0].ID, dogs[1].ID},
	})
	require.NoError(t, err)

	groups, err := f.owners.TopOwnersAtAge(ctx, 33)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	var got []string
	for _, d := range groups[0].Owners[0].Dogs {
		got = append(got, d.Name)
	}
	assert.Equal(t, []string{"d1", "d2", "d3"}, got)
}

func TestTopOwnersAtAge_AgeBeyondStoredRange(t *testing.T) {
	f := newOwnerFixture(t)
	f.addOwner(t, "ann", 40, 1, 0)

	groups, err := f.owners.TopOwnersAtAge(context.Background(), math.MaxInt32+1)
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestTopOwnersAtAge_NegativeAge(t *testing.T) {
	f := newOwnerFixture(t)
	_, err := f.owners.TopOwnersAtAge(context.Background(), -1)
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, "age", service.FieldErrors(err)[0].Field)
}

func TestOwnerService_CreateValidation(t *testing.T) {
	f := newOwnerFixture(t)
	_, err := f.owners.CreateOwner(context.Background(), service.CreateOwnerInput{
		Name: "",
		Age:  -3,
		Cats: []string{"ok", "  "},
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	var fields []string
	for _, fe := range service.FieldErrors(err) {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "age", "cats[1]"}, fields)
}

func TestOwnerService_CreateRejectsAgeBeyondStoredRange(t *testing.T) {
	f := newOwnerFixture(t)
	_, err := f.owners.CreateOwner(context.Background(), service.CreateOwnerInput{Name: "old", Age: math.MaxInt32 + 1})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	require.Len(t, service.FieldErrors(err), 1)
	assert.Equal(t, "age", service.FieldErrors(err)[0].Field)
	assert.Equal(t, "must be <= 2147483647", service.FieldErrors(err)[0].Message)
}

func TestOwnerService_GetOwner(t *testing.T) {
	f := newOwnerFixture(t)
	created := f.addOwner(t, "Ann", 33, 1, 1)

	got, err := f.owners.GetOwner(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = f.owners.GetOwner(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
