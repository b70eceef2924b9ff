package memory

import (
	"context"
	"sync"

	"github.com/maxviazov/pets-service/internal/repository"
)

// journal collects undo steps for inserts made inside WithinTx.
// The collections are append-only, so undoing an insert is enough to roll back.
type journal struct {
	mu   sync.Mutex
	undo []func()
}

func (j *journal) record(fn func()) {
	j.mu.Lock()
	j.undo = append(j.undo, fn)
	j.mu.Unlock()
}

func (j *journal) rollback() {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

type journalKey struct{}

func journalFrom(ctx context.Context) *journal {
	j, _ := ctx.Value(journalKey{}).(*journal)
	return j
}

// track registers the undo step when ctx carries a transaction.
func track(ctx context.Context, undo func()) {
	if j := journalFrom(ctx); j != nil {
		j.record(undo)
	}
}

type txManager struct{}

// NewTxManager returns a TxManager that undoes inserts made by a failed unit of work.
// Writes are visible to other readers before commit; there is no isolation.
func NewTxManager() repository.TxManager { return txManager{} }

func (txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if journalFrom(ctx) != nil {
		return fn(ctx)
	}
	j := &journal{}
	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		j.rollback()
		return err
	}
	return nil
}

var _ repository.TxManager = txManager{}
