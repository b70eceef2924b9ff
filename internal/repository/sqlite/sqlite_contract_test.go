package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/maxviazov/pets-service/internal/repository"
	"github.com/maxviazov/pets-service/internal/repository/contract"
	"github.com/stretchr/testify/require"
)

// setupTestDB opens a migrated database in a per-test temp dir.
func setupTestDB(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "pets.db"))
	if err != nil {
		t.Fatalf("sqlite.Open() failed: %v", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		t.Fatalf("sqlite.Migrate() failed: %v", err)
	}
	return db, func() { db.Close() }
}

func TestCatRepository_SQLiteContract(t *testing.T) {
	contract.RunCatRepositoryContract(t, func(t *testing.T) (repository.CatRepository, func()) {
		db, cleanup := setupTestDB(t)
		return NewCatRepository(db), cleanup
	})
}

func TestDogRepository_SQLiteContract(t *testing.T) {
	contract.RunDogRepositoryContract(t, func(t *testing.T) (repository.DogRepository, func()) {
		db, cleanup := setupTestDB(t)
		return NewDogRepository(db), cleanup
	})
}

func TestOwnerRepository_SQLiteContract(t *testing.T) {
	contract.RunOwnerRepositoryContract(t, func(t *testing.T) (repository.OwnerRepository, func()) {
		db, cleanup := setupTestDB(t)
		return NewOwnerRepository(db), cleanup
	})
}

func TestTxManager_SQLiteContract(t *testing.T) {
	contract.RunTxManagerContract(t, func(t *testing.T) (repository.TxManager, repository.CatRepository, func()) {
		db, cleanup := setupTestDB(t)
		return NewTxManager(db), NewCatRepository(db), cleanup
	})
}

func TestPinger_SQLiteContract(t *testing.T) {
	contract.RunPingerContract(t, func(t *testing.T) (repository.Pinger, func()) {
		db, cleanup := setupTestDB(t)
		store, err := NewStore(db)
		require.NoError(t, err)
		return store.Pinger, cleanup
	})
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	require.NoError(t, Migrate(context.Background(), db))
}

func TestOpen_RejectsEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.Error(t, err)
}

func TestIDList_ScanAndValue(t *testing.T) {
	var l idList
	require.NoError(t, l.Scan(`["a","b"]`))
	require.Equal(t, idList{"a", "b"}, l)

	require.NoError(t, l.Scan(nil))
	require.NotNil(t, l)
	require.Empty(t, l)

	v, err := idList(nil).Value()
	require.NoError(t, err)
	require.Equal(t, "[]", v)

	require.Error(t, l.Scan(42))
}
