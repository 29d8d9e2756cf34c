package data

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/Akashdeep-Patra/tabula/internal/grid"
)

// CachedService wraps a Service with a TTL cache for row queries. Update
// invalidates the cache so the next read is fresh.
//
// Typing in the search dialog, toggling a filter chip back and forth and the
// watcher's refresh all repeat the same queries within a second or two; the
// cache answers those without touching the database.
//
// The cache is bounded by maxCacheEntries.
type CachedService struct {
	inner Service
	ttl   time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// maxCacheEntries caps the number of entries in the cache. When exceeded and
// nothing has expired, the whole cache is flushed.
const maxCacheEntries = 64

type cacheEntry struct {
	rows   grid.Rows
	expiry time.Time
}

// Compile-time check.
var _ Service = (*CachedService)(nil)

// NewCachedService wraps an existing Service with a TTL cache. A zero TTL
// disables caching.
func NewCachedService(inner Service, ttl time.Duration) *CachedService {
	return &CachedService{
		inner: inner,
		ttl:   ttl,
		cache: make(map[string]cacheEntry, 16),
	}
}

// Invalidate clears all cached entries.
func (c *CachedService) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cacheEntry, 16)
	c.mu.Unlock()
}

// Len returns the number of cached entries, expired or not.
func (c *CachedService) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

func (c *CachedService) get(key string) (grid.Rows, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.cache[key]
	if !found || time.Now().After(e.expiry) {
		return nil, false
	}
	return e.rows, true
}

func (c *CachedService) set(key string, rows grid.Rows) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	if len(c.cache) >= maxCacheEntries {
		now := time.Now()
		for k, e := range c.cache {
			if now.After(e.expiry) {
				delete(c.cache, k)
			}
		}
		if len(c.cache) >= maxCacheEntries {
			c.cache = make(map[string]cacheEntry, 16)
		}
	}
	c.cache[key] = cacheEntry{rows: rows, expiry: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// cloneRows copies rows deep enough that the grid can edit the result in
// place without corrupting the cached copy.
func cloneRows(rows grid.Rows) grid.Rows {
	if rows == nil {
		return nil
	}
	out := make(grid.Rows, len(rows))
	for i, r := range rows {
		out[i] = &grid.Row{ID: r.ID, Fields: maps.Clone(r.Fields)}
	}
	return out
}

func (c *CachedService) query(key string, fetch func() (grid.Rows, error)) (grid.Rows, error) {
	if rows, ok := c.get(key); ok {
		return cloneRows(rows), nil
	}
	rows, err := fetch()
	if err != nil {
		// Not cached: a cancelled or timed-out query says nothing about the data.
		return nil, err
	}
	c.set(key, rows)
	return cloneRows(rows), nil
}

// ── Service ─────────────────────────────────────────────────────────────────

// Columns delegates to the inner service.
func (c *CachedService) Columns() []string { return c.inner.Columns() }

// Path delegates to the inner service.
func (c *CachedService) Path() string { return c.inner.Path() }

// Close delegates to the inner service.
func (c *CachedService) Close() error { return c.inner.Close() }

// All returns every row (cached).
func (c *CachedService) All(ctx context.Context) (grid.Rows, error) {
	return c.query("all", func() (grid.Rows, error) { return c.inner.All(ctx) })
}

// Search returns matching rows (cached per term and filter set).
func (c *CachedService) Search(ctx context.Context, term string, filters []string) (grid.Rows, error) {
	key := "search\x00" + term + "\x00" + strings.Join(filters, "\x00")
	return c.query(key, func() (grid.Rows, error) { return c.inner.Search(ctx, term, filters) })
}

// Update writes through and invalidates the cache.
func (c *CachedService) Update(ctx context.Context, id grid.RowID, key, value string) error {
	err := c.inner.Update(ctx, id, key, value)
	if err == nil {
		c.Invalidate()
	}
	return err
}
