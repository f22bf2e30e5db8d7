// Package di wires the pipeline's collaborators into a Container. Every
// client is explicitly constructed and passed in; nothing lives in package
// globals, so tests can assemble the same graph from fakes.
package di

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-fpl-sync/cache"
	"github.com/goliatone/go-fpl-sync/internal/cacheinfra"
	"github.com/goliatone/go-fpl-sync/internal/config"
	"github.com/goliatone/go-fpl-sync/internal/fplapi"
	"github.com/goliatone/go-fpl-sync/pkg/logger"
	"github.com/goliatone/go-fpl-sync/repository"
	"github.com/goliatone/go-fpl-sync/syncer"
)

// Container holds the wired pipeline.
type Container struct {
	cfg     *config.Config
	log     logger.Logger
	db      *bun.DB
	store   cache.Store
	service *syncer.Service
}

// New builds the full dependency graph from configuration: database, cache
// store, API client, and the sync service on top.
func New(cfg *config.Config, log logger.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	store, err := cacheinfra.NewStore(cacheinfra.Config{
		Capacity:             cfg.CacheCapacity,
		NumShards:            cfg.CacheNumShards,
		TTL:                  cfg.CacheTTL(),
		EvictionPercentage:   cfg.CacheEvictionPercentage,
		MissingRecordStorage: cfg.CacheMissingRecords,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	client, err := fplapi.New(fplapi.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout(),
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	service, err := syncer.New(syncer.Options{
		Client: client,
		DB:     db,
		Store:  store,
		Graph:  cache.DefaultGraph(),
		Season: cfg.Season,
		Logger: log,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Container{
		cfg:     cfg,
		log:     log,
		db:      db,
		store:   store,
		service: service,
	}, nil
}

// Service returns the sync service.
func (c *Container) Service() *syncer.Service {
	return c.service
}

// DB returns the bun database handle.
func (c *Container) DB() *bun.DB {
	return c.db
}

// Store returns the cache store.
func (c *Container) Store() cache.Store {
	return c.store
}

// Migrate creates the entity tables if they do not exist.
func (c *Container) Migrate(ctx context.Context) error {
	return repository.CreateTables(ctx, c.db)
}

// Close releases the database handle.
func (c *Container) Close() error {
	return c.db.Close()
}

func openDB(cfg *config.Config) (*bun.DB, error) {
	switch cfg.DBDriver {
	case "sqlite3":
		sqldb, err := sql.Open("sqlite3", cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		// sqlite serializes writers; a single connection avoids lock errors.
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case "postgres":
		sqldb, err := sql.Open("postgres", cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("di: unsupported db driver %q", cfg.DBDriver)
	}
}
