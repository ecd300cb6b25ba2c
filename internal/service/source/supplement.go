package source

import (
	"context"

	"github.com/ericxyz86/culturesoup/internal/cache"
	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

// SupplementSource merges feeder-pushed items into a scan as a virtual
// source. It never touches the network; an expired batch just yields
// nothing.
type SupplementSource struct {
	cache *cache.SupplementCache
}

func NewSupplementSource(c *cache.SupplementCache) *SupplementSource {
	return &SupplementSource{cache: c}
}

func (s *SupplementSource) Name() string { return "Supplement" }

func (s *SupplementSource) Collect(ctx context.Context) ([]trend.RawItem, error) {
	return s.cache.Items(), nil
}
