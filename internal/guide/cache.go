package guide

import (
	"context"
	"slices"
	"sync"

	"grammarguide/internal/logger"
	"grammarguide/internal/model"
)

// Lister fetches the full entry list.
type Lister interface {
	List(ctx context.Context) ([]model.Entry, error)
}

// Cache holds the session's entries, kept in title order.
type Cache struct {
	mu       sync.RWMutex
	entries  []model.Entry
	attempts int
	loadErr  error
}

func NewCache() *Cache {
	return &Cache{}
}

// Load fetches the list once per session. Later calls are no-ops. A failed
// fetch leaves the cache empty; the error is returned and kept for LoadErr.
func (c *Cache) Load(ctx context.Context, l Lister) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attempts > 0 {
		return nil
	}
	c.attempts++

	entries, err := l.List(ctx)
	if err != nil {
		c.loadErr = err
		logger.Warn("entry list load failed", "module", "guide", "action", "load", "resource", "entry", "result", "failed", "error", err)
		return err
	}

	c.entries = slices.Clone(entries)
	slices.SortStableFunc(c.entries, model.CompareEntries)
	logger.Debug("entry list loaded", "module", "guide", "action", "load", "resource", "entry", "result", "ok", "count", len(c.entries))
	return nil
}

// LoadErr returns the error from the initial load, if any.
func (c *Cache) LoadErr() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}

// Add appends entry and restores title order.
func (c *Cache) Add(entry model.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
	slices.SortStableFunc(c.entries, model.CompareEntries)
}

// Entries returns a copy of the cached entries.
func (c *Cache) Entries() []model.Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Entry, len(c.entries))
	for i, e := range c.entries {
		e.Examples = slices.Clone(e.Examples)
		out[i] = e
	}
	return out
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
