// Package wiring provides dependency injection for the cache and its
// durable-store collaborator, mirroring the teacher's pkg/di.Container:
// a small struct holding singleton instances plus factory methods, rather
// than a general-purpose DI framework.
package wiring

import (
	"context"
	"log/slog"

	"github.com/lumenforge/execcache"
	"github.com/lumenforge/execcache/internal/sqlstore"
)

// Container wires together a Cache, its Store, and the logger both share.
type Container struct {
	cache  *execcache.Cache
	store  *sqlstore.Store
	config execcache.Config
	logger *slog.Logger
}

// Options configures NewContainer.
type Options struct {
	Config execcache.Config
	Logger *slog.Logger
	// DataSourceName is the SQLite DSN passed to sqlstore.OpenSQLite. Empty
	// defaults to an ephemeral in-memory database, convenient for tests.
	DataSourceName string
}

// NewContainer opens the SQLite-backed reference store, migrates it, and
// constructs a Cache on top of it using opts.Config.
func NewContainer(ctx context.Context, opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	dsn := opts.DataSourceName
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := sqlstore.OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}
	if err := sqlstore.Migrate(ctx, db); err != nil {
		return nil, err
	}
	store := sqlstore.New(db, opts.Logger)

	cache, err := execcache.NewCache(opts.Config, store)
	if err != nil {
		return nil, err
	}

	return &Container{cache: cache, store: store, config: opts.Config, logger: opts.Logger}, nil
}

// NewContainerWithDefaults constructs a Container using execcache.DefaultConfig.
func NewContainerWithDefaults(ctx context.Context) (*Container, error) {
	return NewContainer(ctx, Options{Config: execcache.DefaultConfig()})
}

// Cache returns the singleton Cache instance.
func (c *Container) Cache() *execcache.Cache { return c.cache }

// Store returns the singleton Store instance, for seeding data or wiring a
// flusher's persister.
func (c *Container) Store() *sqlstore.Store { return c.store }

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() execcache.Config { return c.config }

// Logger returns the shared logger.
func (c *Container) Logger() *slog.Logger { return c.logger }
