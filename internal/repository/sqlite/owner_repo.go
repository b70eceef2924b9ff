package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/maxviazov/pets-service/internal/model"
	"github.com/maxviazov/pets-service/internal/repository"
)

type ownerRepository struct{ db *sqlx.DB }

func NewOwnerRepository(db *sqlx.DB) repository.OwnerRepository { return &ownerRepository{db: db} }

func (r *ownerRepository) Create(ctx context.Context, o model.Owner) (model.Owner, error) {
	query := `INSERT INTO owners (id, name, age, cats, dogs)
			  VALUES (:id, :name, :age, :cats, :dogs)`
	row := dbOwner{ID: o.ID, Name: o.Name, Age: o.Age, Cats: idList(o.Cats), Dogs: idList(o.Dogs)}
	if _, err := sqlx.NamedExecContext(ctx, getQ(ctx, r.db), query, row); err != nil {
		return model.Owner{}, mapError(err)
	}
	return row.toDomain(), nil
}

func (r *ownerRepository) GetByID(ctx context.Context, id string) (model.Owner, error) {
	var row dbOwner
	query := `SELECT id, name, age, cats, dogs FROM owners WHERE id = ?`
	if err := sqlx.GetContext(ctx, getQ(ctx, r.db), &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Owner{}, repository.ErrNotFound
		}
		return model.Owner{}, fmt.Errorf("getting owner %s: %w", id, err)
	}
	return row.toDomain(), nil
}

func (r *ownerRepository) TopByPetCount(ctx context.Context, age, limit int) ([]model.Owner, error) {
	var rows []dbOwner
	query := `SELECT id, name, age, cats, dogs
			  FROM owners
			  WHERE age = ?
			  ORDER BY json_array_length(cats) + json_array_length(dogs) DESC, seq ASC
			  LIMIT ?`
	if err := sqlx.SelectContext(ctx, getQ(ctx, r.db), &rows, query, age, limit); err != nil {
		return nil, fmt.Errorf("ranking owners aged %d: %w", age, err)
	}
	out := make([]model.Owner, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

var _ repository.OwnerRepository = (*ownerRepository)(nil)
