package cache

import (
	"sync"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

// ResultCache holds the single most recent scan result. Set replaces
// the slot atomically; readers always see a fully-formed immutable
// value. There is no TTL — staleness is the caller's concern, surfaced
// through ScanResult.ScannedAt.
type ResultCache struct {
	mu     sync.RWMutex
	result *trend.ScanResult
}

func NewResultCache() *ResultCache {
	return &ResultCache{}
}

// Set replaces the cached result wholesale.
func (c *ResultCache) Set(result *trend.ScanResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = result
}

// Get returns the latest result, or false when no scan has finished yet.
func (c *ResultCache) Get() (*trend.ScanResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.result == nil {
		return nil, false
	}
	return c.result, true
}
