package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/pets-service/internal/model"
	"github.com/maxviazov/pets-service/internal/repository"
)

const ownerColumns = `id, name, age, cats, dogs`

type ownerRepository struct{ pool *pgxpool.Pool }

func NewOwnerRepository(pool *pgxpool.Pool) repository.OwnerRepository {
	return &ownerRepository{pool: pool}
}

func scanOwner(row pgx.Row) (model.Owner, error) {
	var o model.Owner
	err := row.Scan(&o.ID, &o.Name, &o.Age, &o.Cats, &o.Dogs)
	if o.Cats == nil {
		o.Cats = []string{}
	}
	if o.Dogs == nil {
		o.Dogs = []string{}
	}
	return o, err
}

func (r *ownerRepository) Create(ctx context.Context, o model.Owner) (model.Owner, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Owner{}, err
	}
	cats, dogs := o.Cats, o.Dogs
	if cats == nil {
		cats = []string{}
	}
	if dogs == nil {
		dogs = []string{}
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO owners (id, name, age, cats, dogs)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+ownerColumns,
		o.ID, o.Name, o.Age, cats, dogs,
	)
	out, err := scanOwner(row)
	if err != nil {
		return model.Owner{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *ownerRepository) GetByID(ctx context.Context, id string) (model.Owner, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Owner{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanOwner(exec.QueryRow(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Owner{}, repository.ErrNotFound
		}
		return model.Owner{}, repository.MapPgError(err)
	}
	return out, nil
}

// TopByPetCount filters, sorts and cuts inside Postgres; grouping and
// reference resolution stay in the service.
func (r *ownerRepository) TopByPetCount(ctx context.Context, age, limit int) ([]model.Owner, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+ownerColumns+`
		 FROM owners
		 WHERE age = $1
		 ORDER BY cardinality(cats) + cardinality(dogs) DESC, seq ASC
		 LIMIT $2`,
		age, limit,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Owner, 0, limit)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.OwnerRepository = (*ownerRepository)(nil)
