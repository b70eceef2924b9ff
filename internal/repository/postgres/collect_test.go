package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/maxviazov/pets-service/internal/model"
	"github.com/maxviazov/pets-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noRows is a result set with nothing in it.
type noRows struct{ closed *bool }

func (r noRows) Close() {
	if r.closed != nil {
		*r.closed = true
	}
}
func (noRows) Err() error                                   { return nil }
func (noRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (noRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (noRows) Next() bool                                   { return false }
func (noRows) Scan(...any) error                            { return nil }
func (noRows) Values() ([]any, error)                       { return nil, nil }
func (noRows) RawValues() [][]byte                          { return nil }
func (noRows) Conn() *pgx.Conn                              { return nil }

func TestWindowSize(t *testing.T) {
	cases := []struct {
		name  string
		page  repository.Page
		total int
		want  int
	}{
		{"full page", repository.Page{Limit: 3, Offset: 0}, 10, 3},
		{"short tail", repository.Page{Limit: 3, Offset: 9}, 10, 1},
		{"past the end", repository.Page{Limit: 3, Offset: 30}, 10, 0},
		{"empty table", repository.Page{Limit: 5}, 0, 0},
		{"huge limit", repository.Page{Limit: 1 << 50}, 7, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, windowSize(tc.page, tc.total))
		})
	}
}

func TestCollect_HugeLimitOnEmptyResult(t *testing.T) {
	hint := windowSize(repository.Page{Limit: 1 << 50}, 0)

	var closed bool
	var cats []model.Cat
	require.NotPanics(t, func() {
		var err error
		cats, err = collectCats(noRows{closed: &closed}, hint)
		require.NoError(t, err)
	})
	assert.Empty(t, cats)
	assert.True(t, closed)

	require.NotPanics(t, func() {
		dogs, err := collectDogs(noRows{}, hint)
		require.NoError(t, err)
		assert.NotNil(t, dogs)
	})
}
