// Package app wires configuration, storage, services and the HTTP layer into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/pets-service/internal/config"
	"github.com/maxviazov/pets-service/internal/handler"
	"github.com/maxviazov/pets-service/internal/repository"
	"github.com/maxviazov/pets-service/internal/repository/memory"
	"github.com/maxviazov/pets-service/internal/repository/postgres"
	"github.com/maxviazov/pets-service/internal/repository/sqlite"
	"github.com/maxviazov/pets-service/internal/service"
	"github.com/rs/zerolog"
)

// OpenStore connects the backend named by cfg.Storage.Driver and, when
// auto_migrate is set, brings its schema up to date.
func OpenStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.Store, error) {
	l := logger.With().Str("module", "app").Str("driver", cfg.Storage.Driver).Logger()

	switch cfg.Storage.Driver {
	case config.DriverMemory, "":
		l.Info().Msg("using in-memory store")
		return memory.NewStore(), nil

	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.Postgres, logger)
		if err != nil {
			return repository.Store{}, err
		}
		if cfg.Storage.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return repository.Store{}, err
			}
			l.Info().Msg("postgres migrations applied")
		}
		return postgres.NewStore(pool)

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return repository.Store{}, err
		}
		if cfg.Storage.AutoMigrate {
			if err := sqlite.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return repository.Store{}, err
			}
			l.Info().Str("path", cfg.Storage.SQLitePath).Msg("sqlite migrations applied")
		}
		return sqlite.NewStore(db)

	default:
		return repository.Store{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// App owns the store and the services built on top of it.
type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	store  repository.Store
	pets   service.PetService
	owners service.OwnerService
	engine *gin.Engine
}

// New opens the configured store and builds the services and router.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return NewWithStore(cfg, store, logger), nil
}

// NewWithStore builds the app on an already opened store.
func NewWithStore(cfg *config.Config, store repository.Store, logger zerolog.Logger) *App {
	a := &App{
		cfg:    cfg,
		log:    logger.With().Str("module", "app").Logger(),
		store:  store,
		pets:   service.NewPetService(store.Cats, store.Dogs, logger),
		owners: service.NewOwnerService(store.Owners, store.Cats, store.Dogs, logger),
	}
	a.engine = a.newEngine(logger)
	return a
}

func (a *App) newEngine(logger zerolog.Logger) *gin.Engine {
	if a.cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.AccessLog(logger))
	handler.Register(r, handler.Deps{
		Store:   a.store.Pinger,
		Storage: a.cfg.Storage.Driver,
		Pets:    a.pets,
		Owners:  a.owners,
	})
	return r
}

func (a *App) Handler() http.Handler        { return a.engine }
func (a *App) Store() repository.Store      { return a.store }
func (a *App) Pets() service.PetService     { return a.pets }
func (a *App) Owners() service.OwnerService { return a.owners }

// Addr is the listen address; an empty host binds every interface.
func (a *App) Addr() string { return net.JoinHostPort("", strconv.Itoa(a.cfg.App.Port)) }

// seconds converts a config value in seconds, falling back to def when unset.
func seconds(v, def int) time.Duration {
	if v <= 0 {
		v = def
	}
	return time.Duration(v) * time.Second
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// within the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Addr(),
		Handler:           a.engine,
		ReadHeaderTimeout: seconds(a.cfg.App.ReadTimeout, 5),
		ReadTimeout:       seconds(a.cfg.App.ReadTimeout, 5),
		WriteTimeout:      seconds(a.cfg.App.WriteTimeout, 10),
	}

	serveErr := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", srv.Addr).Str("storage", a.cfg.Storage.Driver).Msg("http server listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), seconds(a.cfg.App.ShutdownTimeout, 10))
		err := srv.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the store.
func (a *App) Close() {
	if a.store.Close != nil {
		a.store.Close()
	}
}
