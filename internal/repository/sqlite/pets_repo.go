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

type catRepository struct{ db *sqlx.DB }

func NewCatRepository(db *sqlx.DB) repository.CatRepository { return &catRepository{db: db} }

func (r *catRepository) Create(ctx context.Context, c model.Cat) (model.Cat, error) {
	query := `INSERT INTO cats (id, name, age, breed, weight, has_clipped_claws)
			  VALUES (:id, :name, :age, :breed, :weight, :has_clipped_claws)`
	row := dbCat{ID: c.ID, Name: c.Name, Age: c.Age, Breed: c.Breed, Weight: c.Weight, HasClippedClaws: c.HasClippedClaws}
	if _, err := sqlx.NamedExecContext(ctx, getQ(ctx, r.db), query, row); err != nil {
		return model.Cat{}, mapError(err)
	}
	return row.toDomain(), nil
}

func (r *catRepository) GetByID(ctx context.Context, id string) (model.Cat, error) {
	var row dbCat
	query := `SELECT id, name, age, breed, weight, has_clipped_claws FROM cats WHERE id = ?`
	if err := sqlx.GetContext(ctx, getQ(ctx, r.db), &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Cat{}, repository.ErrNotFound
		}
		return model.Cat{}, fmt.Errorf("getting cat %s: %w", id, err)
	}
	return row.toDomain(), nil
}

func (r *catRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Cat, error) {
	if len(ids) == 0 {
		return []model.Cat{}, nil
	}
	q := getQ(ctx, r.db)
	query, args, err := sqlx.In(`SELECT id, name, age, breed, weight, has_clipped_claws
			  FROM cats WHERE id IN (?) ORDER BY seq`, ids)
	if err != nil {
		return nil, fmt.Errorf("expanding cat ids: %w", err)
	}
	var rows []dbCat
	if err := sqlx.SelectContext(ctx, q, &rows, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("getting cats by ids: %w", err)
	}
	return catsToDomain(rows), nil
}

func (r *catRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Cat], error) {
	p = repository.SanitizePage(p)
	q := getQ(ctx, r.db)
	var total int
	if err := sqlx.GetContext(ctx, q, &total, `SELECT COUNT(*) FROM cats`); err != nil {
		return repository.PageResult[model.Cat]{}, fmt.Errorf("counting cats: %w", err)
	}
	var rows []dbCat
	query := `SELECT id, name, age, breed, weight, has_clipped_claws
			  FROM cats ORDER BY seq LIMIT ? OFFSET ?`
	if err := sqlx.SelectContext(ctx, q, &rows, query, p.Limit, p.Offset); err != nil {
		return repository.PageResult[model.Cat]{}, fmt.Errorf("listing cats: %w", err)
	}
	return repository.PageResult[model.Cat]{Items: catsToDomain(rows), Total: total}, nil
}

func (r *catRepository) TotalWeight(ctx context.Context) (float64, error) {
	var sum float64
	if err := sqlx.GetContext(ctx, getQ(ctx, r.db), &sum, `SELECT COALESCE(SUM(weight), 0.0) FROM cats`); err != nil {
		return 0, fmt.Errorf("summing cat weight: %w", err)
	}
	return sum, nil
}

func catsToDomain(rows []dbCat) []model.Cat {
	out := make([]model.Cat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

type dogRepository struct{ db *sqlx.DB }

func NewDogRepository(db *sqlx.DB) repository.DogRepository { return &dogRepository{db: db} }

func (r *dogRepository) Create(ctx context.Context, d model.Dog) (model.Dog, error) {
	query := `INSERT INTO dogs (id, name, age, breed, weight, wags_tail)
			  VALUES (:id, :name, :age, :breed, :weight, :wags_tail)`
	row := dbDog{ID: d.ID, Name: d.Name, Age: d.Age, Breed: d.Breed, Weight: d.Weight, WagsTail: d.WagsTail}
	if _, err := sqlx.NamedExecContext(ctx, getQ(ctx, r.db), query, row); err != nil {
		return model.Dog{}, mapError(err)
	}
	return row.toDomain(), nil
}

func (r *dogRepository) GetByID(ctx context.Context, id string) (model.Dog, error) {
	var row dbDog
	query := `SELECT id, name, age, breed, weight, wags_tail FROM dogs WHERE id = ?`
	if err := sqlx.GetContext(ctx, getQ(ctx, r.db), &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Dog{}, repository.ErrNotFound
		}
		return model.Dog{}, fmt.Errorf("getting dog %s: %w", id, err)
	}
	return row.toDomain(), nil
}

func (r *dogRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Dog, error) {
	if len(ids) == 0 {
		return []model.Dog{}, nil
	}
	q := getQ(ctx, r.db)
	query, args, err := sqlx.In(`SELECT id, name, age, breed, weight, wags_tail
			  FROM dogs WHERE id IN (?) ORDER BY seq`, ids)
	if err != nil {
		return nil, fmt.Errorf("expanding dog ids: %w", err)
	}
	var rows []dbDog
	if err := sqlx.SelectContext(ctx, q, &rows, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("getting dogs by ids: %w", err)
	}
	return dogsToDomain(rows), nil
}

func (r *dogRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Dog], error) {
	p = repository.SanitizePage(p)
	q := getQ(ctx, r.db)
	var total int
	if err := sqlx.GetContext(ctx, q, &total, `SELECT COUNT(*) FROM dogs`); err != nil {
		return repository.PageResult[model.Dog]{}, fmt.Errorf("counting dogs: %w", err)
	}
	var rows []dbDog
	query := `SELECT id, name, age, breed, weight, wags_tail
			  FROM dogs ORDER BY seq LIMIT ? OFFSET ?`
	if err := sqlx.SelectContext(ctx, q, &rows, query, p.Limit, p.Offset); err != nil {
		return repository.PageResult[model.Dog]{}, fmt.Errorf("listing dogs: %w", err)
	}
	return repository.PageResult[model.Dog]{Items: dogsToDomain(rows), Total: total}, nil
}

func (r *dogRepository) TotalWeight(ctx context.Context) (float64, error) {
	var sum float64
	if err := sqlx.GetContext(ctx, getQ(ctx, r.db), &sum, `SELECT COALESCE(SUM(weight), 0.0) FROM dogs`); err != nil {
		return 0, fmt.Errorf("summing dog weight: %w", err)
	}
	return sum, nil
}

func (r *dogRepository) HappyNames(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := sqlx.SelectContext(ctx, getQ(ctx, r.db), &names, `SELECT name FROM dogs WHERE wags_tail = 1 ORDER BY seq`); err != nil {
		return nil, fmt.Errorf("listing happy dogs: %w", err)
	}
	return names, nil
}

func dogsToDomain(rows []dbDog) []model.Dog {
	out := make([]model.Dog, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

var (
	_ repository.CatRepository = (*catRepository)(nil)
	_ repository.DogRepository = (*dogRepository)(nil)
)
