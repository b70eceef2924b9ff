package postgres

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/pets-service/internal/config"
	"github.com/maxviazov/pets-service/internal/repository"
	"github.com/maxviazov/pets-service/internal/repository/contract"
	"github.com/rs/zerolog"
)

var (
	pool   *pgxpool.Pool
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		// allow skipping contract tests unless explicitly enabled
		skippy = true
		os.Exit(m.Run())
	}

	cfg, ok := configFromEnv()
	if !ok {
		fmt.Println("[contract] APP_POSTGRES_* env not set; skipping")
		skippy = true
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var err error
	pool, err = Open(ctx, cfg, zerolog.Nop())
	if err != nil {
		fmt.Println("[contract] open error:", err)
		os.Exit(1)
	}
	if err := Migrate(ctx, pool); err != nil {
		fmt.Println("[contract] migrate error:", err)
		os.Exit(1)
	}

	code := m.Run()
	pool.Close()
	os.Exit(code)
}

func skipIfNeeded(t *testing.T) {
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 and provide DB env")
	}
}

func configFromEnv() (config.PostgresConfig, bool) {
	port, err := strconv.Atoi(firstNonEmpty(os.Getenv("APP_POSTGRES_PORT"), os.Getenv("POSTGRES_PORT"), "5432"))
	if err != nil {
		return config.PostgresConfig{}, false
	}
	cfg := config.PostgresConfig{
		Host:     firstNonEmpty(os.Getenv("APP_POSTGRES_HOST"), os.Getenv("POSTGRES_HOST"), "localhost"),
		Port:     port,
		User:     firstNonEmpty(os.Getenv("APP_POSTGRES_USER"), os.Getenv("POSTGRES_USER"), os.Getenv("DB_USER")),
		Password: firstNonEmpty(os.Getenv("APP_POSTGRES_PASSWORD"), os.Getenv("POSTGRES_PASSWORD"), os.Getenv("DB_PASSWORD")),
		DBName:   firstNonEmpty(os.Getenv("APP_POSTGRES_DB"), os.Getenv("POSTGRES_DB"), os.Getenv("DB_NAME")),
		SSLMode:  firstNonEmpty(os.Getenv("APP_POSTGRES_SSLMODE"), os.Getenv("POSTGRES_SSLMODE"), "disable"),
	}
	if cfg.User == "" || cfg.Password == "" || cfg.DBName == "" {
		return config.PostgresConfig{}, false
	}
	return cfg, true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateAll(t *testing.T) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), "TRUNCATE TABLE cats, dogs, owners RESTART IDENTITY"); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

func makeCatRepo(t *testing.T) (repository.CatRepository, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewCatRepository(pool), func() { truncateAll(t) }
}

func makeDogRepo(t *testing.T) (repository.DogRepository, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewDogRepository(pool), func() { truncateAll(t) }
}

func makeOwnerRepo(t *testing.T) (repository.OwnerRepository, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewOwnerRepository(pool), func() { truncateAll(t) }
}

func makeTx(t *testing.T) (repository.TxManager, repository.CatRepository, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewTxManager(pool), NewCatRepository(pool), func() { truncateAll(t) }
}

func makePinger(t *testing.T) (repository.Pinger, func()) {
	skipIfNeeded(t)
	return NewPinger(pool), func() {}
}

func TestCatRepository_PostgresContract(t *testing.T) {
	contract.RunCatRepositoryContract(t, makeCatRepo)
}

func TestDogRepository_PostgresContract(t *testing.T) {
	contract.RunDogRepositoryContract(t, makeDogRepo)
}

func TestOwnerRepository_PostgresContract(t *testing.T) {
	contract.RunOwnerRepositoryContract(t, makeOwnerRepo)
}

func TestTxManager_PostgresContract(t *testing.T) {
	contract.RunTxManagerContract(t, makeTx)
}

func TestPinger_PostgresContract(t *testing.T) {
	contract.RunPingerContract(t, makePinger)
}
