package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/pets-service/internal/model"
	"github.com/maxviazov/pets-service/internal/repository"
)

const catColumns = `id, name, age, breed, weight, has_clipped_claws`

type catRepository struct{ pool *pgxpool.Pool }

func NewCatRepository(pool *pgxpool.Pool) repository.CatRepository {
	return &catRepository{pool: pool}
}

func scanCat(row pgx.Row) (model.Cat, error) {
	var c model.Cat
	err := row.Scan(&c.ID, &c.Name, &c.Age, &c.Breed, &c.Weight, &c.HasClippedClaws)
	return c, err
}

func (r *catRepository) Create(ctx context.Context, c model.Cat) (model.Cat, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Cat{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO cats (id, name, age, breed, weight, has_clipped_claws)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+catColumns,
		c.ID, c.Name, c.Age, c.Breed, c.Weight, c.HasClippedClaws,
	)
	out, err := scanCat(row)
	if err != nil {
		return model.Cat{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *catRepository) GetByID(ctx context.Context, id string) (model.Cat, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Cat{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanCat(exec.QueryRow(ctx, `SELECT `+catColumns+` FROM cats WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Cat{}, repository.ErrNotFound
		}
		return model.Cat{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *catRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Cat, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Cat{}, nil
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT `+catColumns+` FROM cats WHERE id = ANY($1) ORDER BY seq`, ids)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return collectCats(rows, len(ids))
}

// List counts separately from the page query: an offset past the end
// yields no rows, and the total is still needed for the pager.
func (r *catRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Cat], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Cat]{}, err
	}
	p = repository.SanitizePage(p)
	exec := getQ(ctx, r.pool)

	var total int
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM cats`).Scan(&total); err != nil {
		return repository.PageResult[model.Cat]{}, repository.MapPgError(err)
	}
	rows, err := exec.Query(ctx,
		`SELECT `+catColumns+` FROM cats ORDER BY seq LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset,
	)
	if err != nil {
		return repository.PageResult[model.Cat]{}, repository.MapPgError(err)
	}
	items, err := collectCats(rows, windowSize(p, total))
	if err != nil {
		return repository.PageResult[model.Cat]{}, err
	}
	return repository.PageResult[model.Cat]{Items: items, Total: total}, nil
}

func (r *catRepository) TotalWeight(ctx context.Context) (float64, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var sum float64
	exec := getQ(ctx, r.pool)
	if err := exec.QueryRow(ctx, `SELECT COALESCE(SUM(weight), 0) FROM cats`).Scan(&sum); err != nil {
		return 0, repository.MapPgError(err)
	}
	return sum, nil
}

// windowSize is how many rows a page query can return given the collection
// size. limit comes from the client and can be far larger than the table.
func windowSize(p repository.Page, total int) int {
	return max(0, min(p.Limit, total-p.Offset))
}

func collectCats(rows pgx.Rows, capHint int) ([]model.Cat, error) {
	defer rows.Close()
	out := make([]model.Cat, 0, capHint)
	for rows.Next() {
		c, err := scanCat(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.CatRepository = (*catRepository)(nil)
