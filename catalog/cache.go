package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/storage"
)

// ErrSourceRequired is returned when a cache is built without a source repository.
var ErrSourceRequired = errors.New("catalog source required")

// Snapshot is one loaded view of the catalog.
type Snapshot struct {
	Programs []*core.ProgramRecord
	Rankings core.SchoolRankings
	LoadedAt time.Time
}

// Cache implements storage.CatalogRepository over another catalog
// repository, loading it once.
type Cache struct {
	source   storage.CatalogRepository
	snapshot atomic.Pointer[Snapshot]
	loadMu   sync.Mutex
	logger   *slog.Logger
}

var _ storage.CatalogRepository = (*Cache)(nil)

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewCache creates a cache over source. Nothing is read until first use.
func NewCache(source storage.CatalogRepository, opts ...Option) (*Cache, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	c := &Cache{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "catalog-cache")
	return c, nil
}

// ListPrograms returns the programs of the current snapshot.
func (c *Cache) ListPrograms(ctx context.Context) ([]*core.ProgramRecord, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Programs, nil
}

// GetRankings returns the ranking table of the current snapshot.
func (c *Cache) GetRankings(ctx context.Context) (core.SchoolRankings, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Rankings, nil
}

// Snapshot returns the current snapshot, loading it on first use.
// A failed load is not cached; the next call tries again.
func (c *Cache) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := c.snapshot.Load(); snap != nil {
		return snap, nil
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	if snap := c.snapshot.Load(); snap != nil {
		return snap, nil
	}
	return c.load(ctx)
}

// Reload reads the source again and replaces the snapshot.
// On failure the previous snapshot stays in place.
func (c *Cache) Reload(ctx context.Context) (*Snapshot, error) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	return c.load(ctx)
}

// Loaded reports whether a snapshot is present.
func (c *Cache) Loaded() bool {
	return c.snapshot.Load() != nil
}

func (c *Cache) load(ctx context.Context) (*Snapshot, error) {
	programs, err := c.source.ListPrograms(ctx)
	if err != nil {
		c.logger.Error("error loading programs", "err", err)
		return nil, err
	}
	rankings, err := c.source.GetRankings(ctx)
	if err != nil {
		c.logger.Error("error loading rankings", "err", err)
		return nil, err
	}
	if rankings == nil {
		rankings = core.SchoolRankings{}
	}

	snap := &Snapshot{
		Programs: programs,
		Rankings: rankings,
		LoadedAt: time.Now(),
	}
	c.snapshot.Store(snap)
	c.logger.Info("catalog snapshot loaded", "programs", len(programs), "categories", len(rankings))
	return snap, nil
}
