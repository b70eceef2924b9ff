package app_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/pets-service/internal/app"
	"github.com/maxviazov/pets-service/internal/config"
	"github.com/maxviazov/pets-service/internal/repository"
	"github.com/maxviazov/pets-service/internal/repository/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func testConfig(driver string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "pets-service", Env: "test", Port: 0, ShutdownTimeout: 1},
		Storage: config.StorageConfig{Driver: driver, AutoMigrate: true},
	}
}

func TestOpenStore_Memory(t *testing.T) {
	store, err := app.OpenStore(context.Background(), testConfig(config.DriverMemory), zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()
	assert.NoError(t, store.Pinger.Ping(context.Background()))
}

func TestOpenStore_SQLiteMigrates(t *testing.T) {
	cfg := testConfig(config.DriverSQLite)
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "pets.db")

	store, err := app.OpenStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	res, err := store.Cats.List(context.Background(), repository.Page{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := app.OpenStore(context.Background(), testConfig("mongo"), zerolog.Nop())
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestApp_HandlerServesRoutes(t *testing.T) {
	a := app.NewWithStore(testConfig(config.DriverMemory), memory.NewStore(), zerolog.Nop())
	defer a.Close()

	for _, path := range []string{"/ready", "/pets", "/pets/happy-dogs", "/openapi.yaml"} {
		w := httptest.NewRecorder()
		a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestApp_RecoversFromPanics(t *testing.T) {
	a := app.NewWithStore(testConfig(config.DriverMemory), repository.Store{}, zerolog.Nop())

	// Nil repositories panic on first use; Recovery turns that into a 500.
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pets/cats-weight", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestApp_Seed(t *testing.T) {
	a := app.NewWithStore(testConfig(config.DriverMemory), memory.NewStore(), zerolog.Nop())
	defer a.Close()
	ctx := context.Background()

	res, err := a.Seed(ctx, app.SeedOptions{Cats: 7, Dogs: 5, Owners: 4, MaxPets: 3, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, app.SeedResult{Cats: 7, Dogs: 5, Owners: 4}, res)

	page, err := a.Pets().ListPets(ctx, nil, 20, 1)
	require.NoError(t, err)
	assert.Equal(t, 12, page.TotalDocs)
	assert.Len(t, page.Docs, 12)

	known := map[string]bool{}
	for _, d := range page.Docs {
		known[d.ID] = true
	}
	total := 0
	for age := 18; age < 78; age++ {
		groups, err := a.Owners().TopOwnersAtAge(ctx, age)
		require.NoError(t, err)
		for _, g := range groups {
			for _, o := range g.Owners {
				total++
				assert.LessOrEqual(t, len(o.Cats), 3)
				assert.LessOrEqual(t, len(o.Dogs), 3)
				for _, c := range o.Cats {
					assert.True(t, known[c.ID])
				}
			}
		}
	}
	// Ranking keeps at most three owners per age, so not every owner need appear.
	assert.LessOrEqual(t, total, 4)
	assert.Positive(t, total)
}

func TestApp_SeedNothing(t *testing.T) {
	a := app.NewWithStore(testConfig(config.DriverMemory), memory.NewStore(), zerolog.Nop())
	res, err := a.Seed(context.Background(), app.SeedOptions{Owners: 2, MaxPets: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Owners)

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pets", nil))
	body, _ := io.ReadAll(w.Body)
	assert.Contains(t, string(body), `"totalDocs":0`)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	a := app.NewWithStore(testConfig(config.DriverMemory), memory.NewStore(), zerolog.Nop())
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}
