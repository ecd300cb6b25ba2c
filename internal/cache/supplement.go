package cache

import (
	"sync"
	"time"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
	"github.com/ericxyz86/culturesoup/internal/logger"
)

// SupplementCache holds the latest batch pushed by the out-of-band
// feeder. A push replaces the slot wholesale. The batch logically
// expires after the TTL: it is never actively evicted, readers just
// stop seeing it.
type SupplementCache struct {
	mu       sync.RWMutex
	batch    *trend.SupplementalBatch
	storedAt time.Time
	ttl      time.Duration

	now func() time.Time
}

func NewSupplementCache(ttl time.Duration) *SupplementCache {
	return &SupplementCache{
		ttl: ttl,
		now: time.Now,
	}
}

// Set replaces the cached batch and records the push time.
func (c *SupplementCache) Set(batch *trend.SupplementalBatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batch = batch
	c.storedAt = c.now()
	logger.Info("supplement batch cached", "items", len(batch.Items))
}

// Items returns the batch's items, or nil when nothing valid is cached.
func (c *SupplementCache) Items() []trend.RawItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.batch == nil || c.expired() {
		return nil
	}
	return c.batch.Items
}

// Status reports whether a fresh batch is available and how old it is.
func (c *SupplementCache) Status() trend.SupplementStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.batch == nil || c.expired() {
		return trend.SupplementStatus{Available: false}
	}

	generatedAt := c.batch.GeneratedAt
	return trend.SupplementStatus{
		Available:   true,
		GeneratedAt: &generatedAt,
		Counts:      c.batch.Counts,
		TotalCount:  len(c.batch.Items),
		AgeMinutes:  int(c.now().Sub(c.storedAt).Minutes()),
	}
}

// expired assumes the read lock is held.
func (c *SupplementCache) expired() bool {
	return c.now().Sub(c.storedAt) > c.ttl
}
