// Package memory is a process-local backend. It keeps every collection in
// insertion order, which is the order listings and pagination rely on.
package memory

import (
	"sort"
	"sync"

	"github.com/maxviazov/pets-service/internal/repository"
)

// table is an insertion-ordered collection with a unique id index.
type table[T any] struct {
	mu    sync.RWMutex
	rows  []T
	index map[string]int
	idOf  func(T) string
	clone func(T) T
}

func newTable[T any](idOf func(T) string, clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{index: make(map[string]int), idOf: idOf, clone: clone}
}

func (t *table[T]) insert(row T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.idOf(row)
	if _, ok := t.index[id]; ok {
		var zero T
		return zero, repository.ErrAlreadyExists
	}
	t.index[id] = len(t.rows)
	t.rows = append(t.rows, t.clone(row))
	return t.clone(row), nil
}

// remove drops a row and reindexes the tail. Only rollbacks call it.
func (t *table[T]) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pos, ok := t.index[id]
	if !ok {
		return
	}
	t.rows = append(t.rows[:pos], t.rows[pos+1:]...)
	delete(t.index, id)
	for i := pos; i < len(t.rows); i++ {
		t.index[t.idOf(t.rows[i])] = i
	}
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	pos, ok := t.index[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	return t.clone(t.rows[pos]), nil
}

// getMany returns the rows matching ids in insertion order, each at most once.
func (t *table[T]) getMany(ids []string) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	seen := make(map[int]struct{}, len(ids))
	positions := make([]int, 0, len(ids))
	for _, id := range ids {
		pos, ok := t.index[id]
		if !ok {
			continue
		}
		if _, dup := seen[pos]; dup {
			continue
		}
		seen[pos] = struct{}{}
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	out := make([]T, 0, len(positions))
	for _, pos := range positions {
		out = append(out, t.clone(t.rows[pos]))
	}
	return out
}

func (t *table[T]) page(p repository.Page) repository.PageResult[T] {
	p = repository.SanitizePage(p)
	t.mu.RLock()
	defer t.mu.RUnlock()
	total := len(t.rows)
	start := min(p.Offset, total)
	end := start + min(p.Limit, total-start)
	items := make([]T, 0, end-start)
	for _, row := range t.rows[start:end] {
		items = append(items, t.clone(row))
	}
	return repository.PageResult[T]{Items: items, Total: total}
}

// each visits rows in insertion order under the read lock until fn returns false.
func (t *table[T]) each(fn func(T) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if !fn(row) {
			return
		}
	}
}
