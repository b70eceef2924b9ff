package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/maxviazov/pets-service/internal/repository"
)

type txKey struct{}

// getQ returns the transaction carried by ctx, or the db itself.
func getQ(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok && tx != nil {
		return tx
	}
	return db
}

type txManager struct{ db *sqlx.DB }

func NewTxManager(db *sqlx.DB) repository.TxManager { return &txManager{db: db} }

func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return mapError(err)
	}
	return mapError(tx.Commit())
}

var _ repository.TxManager = (*txManager)(nil)
