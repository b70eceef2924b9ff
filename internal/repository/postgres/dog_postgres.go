package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/pets-service/internal/model"
	"github.com/maxviazov/pets-service/internal/repository"
)

const dogColumns = `id, name, age, breed, weight, wags_tail`

type dogRepository struct{ pool *pgxpool.Pool }

func NewDogRepository(pool *pgxpool.Pool) repository.DogRepository {
	return &dogRepository{pool: pool}
}

func scanDog(row pgx.Row) (model.Dog, error) {
	var d model.Dog
	err := row.Scan(&d.ID, &d.Name, &d.Age, &d.Breed, &d.Weight, &d.WagsTail)
	return d, err
}

func (r *dogRepository) Create(ctx context.Context, d model.Dog) (model.Dog, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Dog{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO dogs (id, name, age, breed, weight, wags_tail)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+dogColumns,
		d.ID, d.Name, d.Age, d.Breed, d.Weight, d.WagsTail,
	)
	out, err := scanDog(row)
	if err != nil {
		return model.Dog{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *dogRepository) GetByID(ctx context.Context, id string) (model.Dog, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Dog{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanDog(exec.QueryRow(ctx, `SELECT `+dogColumns+` FROM dogs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Dog{}, repository.ErrNotFound
		}
		return model.Dog{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *dogRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Dog, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Dog{}, nil
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT `+dogColumns+` FROM dogs WHERE id = ANY($1) ORDER BY seq`, ids)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return collectDogs(rows, len(ids))
}

func (r *dogRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Dog], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Dog]{}, err
	}
	p = repository.SanitizePage(p)
	exec := getQ(ctx, r.pool)

	var total int
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM dogs`).Scan(&total); err != nil {
		return repository.PageResult[model.Dog]{}, repository.MapPgError(err)
	}
	rows, err := exec.Query(ctx,
		`SELECT `+dogColumns+` FROM dogs ORDER BY seq LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset,
	)
	if err != nil {
		return repository.PageResult[model.Dog]{}, repository.MapPgError(err)
	}
	items, err := collectDogs(rows, windowSize(p, total))
	if err != nil {
		return repository.PageResult[model.Dog]{}, err
	}
	return repository.PageResult[model.Dog]{Items: items, Total: total}, nil
}

func (r *dogRepository) TotalWeight(ctx context.Context) (float64, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var sum float64
	exec := getQ(ctx, r.pool)
	if err := exec.QueryRow(ctx, `SELECT COALESCE(SUM(weight), 0) FROM dogs`).Scan(&sum); err != nil {
		return 0, repository.MapPgError(err)
	}
	return sum, nil
}

func (r *dogRepository) HappyNames(ctx context.Context) ([]string, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT name FROM dogs WHERE wags_tail ORDER BY seq`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func collectDogs(rows pgx.Rows, capHint int) ([]model.Dog, error) {
	defer rows.Close()
	out := make([]model.Dog, 0, capHint)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.DogRepository = (*dogRepository)(nil)
