// Package app wires configuration into the durable store, caches, completion
// client and services shared by the server and the operator CLI.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ndewijer/InvestBoard-Backend/internal/api"
	"github.com/ndewijer/InvestBoard-Backend/internal/config"
	"github.com/ndewijer/InvestBoard-Backend/internal/database"
	"github.com/ndewijer/InvestBoard-Backend/internal/memcache"
	"github.com/ndewijer/InvestBoard-Backend/internal/openrouter"
	"github.com/ndewijer/InvestBoard-Backend/internal/repository"
	"github.com/ndewijer/InvestBoard-Backend/internal/service"
)

// App holds the wired dependencies.
type App struct {
	Config     *config.Config
	Store      service.CacheStore
	Memory     *memcache.Cache
	MarketData *service.MarketDataService
	System     *service.SystemService

	closers []func() error
}

// New opens the configured durable store and builds the services on top of it.
// For the SQLite backend pending migrations are applied first.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = store

	var memOpts []memcache.Option
	if cfg.Cache.MemoryTTL > 0 {
		memOpts = append(memOpts, memcache.WithTTL(cfg.Cache.MemoryTTL))
	}
	a.Memory = memcache.New(memOpts...)

	if cfg.OpenRouter.APIKey == "" {
		log.Printf("Warning: no completion API key configured; cache misses will fail")
	}
	completer := openrouter.NewClient(cfg.OpenRouter)

	a.MarketData = service.NewMarketDataService(store, a.Memory, completer)
	a.System = service.NewSystemService(store)
	return a, nil
}

func (a *App) openStore(ctx context.Context) (service.CacheStore, error) {
	switch a.Config.Cache.Backend {
	case config.CacheBackendRedis:
		repo, err := repository.NewRedisCacheRepository(a.Config.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, repo.Close)
		if err := repo.Ping(ctx); err != nil {
			// Reads fall through to the memory tier until Redis is back.
			log.Printf("Warning: redis not reachable at startup: %v", err)
		}
		log.Printf("Using redis durable cache")
		return repo, nil

	default:
		db, err := OpenDatabase(ctx, a.Config.Database.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		log.Printf("Connected to database: %s", a.Config.Database.Path)
		return repository.NewCachedEntityRepository(db), nil
	}
}

// OpenDatabase opens the SQLite file and applies pending migrations.
func OpenDatabase(ctx context.Context, path string) (*sql.DB, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	version, err := database.Migrate(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("Database schema at version %d", version)
	return db, nil
}

// Handler returns the HTTP router.
func (a *App) Handler() http.Handler {
	return api.NewRouter(a.MarketData, a.System, a.Config)
}

// Close releases the durable store.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Serve runs the HTTP server, and the refresh scheduler when one is
// configured, until ctx is cancelled. Shutdown waits up to 30 seconds.
func (a *App) Serve(ctx context.Context) error {
	var scheduler *service.RefreshScheduler
	if a.Config.Refresh.Schedule != "" {
		s, err := service.NewRefreshScheduler(a.MarketData, a.Config.Refresh.Schedule, 5*time.Minute)
		if err != nil {
			return err
		}
		scheduler = s
		scheduler.Start()
	}

	server := &http.Server{
		Addr:         a.Config.Server.Addr,
		Handler:      a.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*a.Config.OpenRouter.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", a.Config.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}
