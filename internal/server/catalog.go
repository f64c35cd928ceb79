package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/memegacha/internal/models"
	"github.com/desertthunder/memegacha/internal/services"
)

// DefaultRetryInterval is the minimum gap between catalog fetch attempts after a failure.
const DefaultRetryInterval = 2 * time.Second

// CatalogCache holds the catalog for all visitors once it has loaded.
//
// Until the first successful fetch every page view may trigger another attempt, at most one per retry interval,
// which mirrors a visitor reloading the page.
type CatalogCache struct {
	source services.CatalogSource
	retry  time.Duration
	logger *log.Logger
	now    func() time.Time

	mu          sync.Mutex
	catalog     models.Catalog
	lastAttempt time.Time
	lastErr     error
}

// NewCatalogCache creates an empty cache over source.
func NewCatalogCache(source services.CatalogSource, retry time.Duration, logger *log.Logger) *CatalogCache {
	if retry <= 0 {
		retry = DefaultRetryInterval
	}
	return &CatalogCache{source: source, retry: retry, logger: logger, now: time.Now}
}

// Load fetches the catalog unconditionally and caches it on success.
//
// A fetch abandoned because ctx ended is discarded without touching the cache.
func (c *CatalogCache) Load(ctx context.Context) (models.Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *CatalogCache) load(ctx context.Context) (models.Catalog, error) {
	c.lastAttempt = c.now()
	catalog, err := c.source.Fetch(ctx)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		c.lastErr = err
		c.logger.Error("catalog load failed", "source", c.source.Name(), "error", err)
		return nil, err
	}

	c.catalog = catalog
	c.lastErr = nil
	c.logger.Info("catalog loaded", "source", c.source.Name(), "items", len(catalog))
	return catalog, nil
}

// Get returns the cached catalog, fetching it first when nothing is cached and the retry interval has passed.
func (c *CatalogCache) Get(ctx context.Context) (models.Catalog, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.catalog != nil {
		return c.catalog, true
	}
	if !c.lastAttempt.IsZero() && c.now().Sub(c.lastAttempt) < c.retry {
		return nil, false
	}

	catalog, err := c.load(ctx)
	return catalog, err == nil
}

// Cached returns the catalog without fetching.
func (c *CatalogCache) Cached() (models.Catalog, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog, c.catalog != nil
}

// Err returns the error from the latest failed attempt, or nil.
func (c *CatalogCache) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
