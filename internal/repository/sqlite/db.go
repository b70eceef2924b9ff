// Package sqlite is a single-file backend built on sqlx and the pure-Go
// modernc driver. Owner references are stored as JSON arrays of ids.
package sqlite

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/maxviazov/pets-service/internal/repository"
	"github.com/pressly/goose/v3"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open connects to the database file at path. SQLite allows one writer,
// so the pool is capped at a single connection.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Migrate applies the embedded migrations.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return errors.New("sqlite db is nil")
	}
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		return fmt.Errorf("setting dialect for migrations: %w", err)
	}
	if err := goose.UpContext(ctx, db.DB, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// NewStore wires every SQLite repository onto one connection.
func NewStore(db *sqlx.DB) (repository.Store, error) {
	if db == nil {
		return repository.Store{}, errors.New("sqlite db is nil")
	}
	return repository.Store{
		Cats:   NewCatRepository(db),
		Dogs:   NewDogRepository(db),
		Owners: NewOwnerRepository(db),
		Tx:     NewTxManager(db),
		Pinger: pinger{db: db},
		Close:  func() { _ = db.Close() },
	}, nil
}

type pinger struct{ db *sqlx.DB }

func (p pinger) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

// mapError translates constraint failures to the repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var sqErr *sqlitedriver.Error
	if errors.As(err, &sqErr) {
		switch sqErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return repository.ErrAlreadyExists
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return repository.ErrConflict
		}
	}
	return err
}
