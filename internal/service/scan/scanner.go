package scan

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ericxyz86/culturesoup/internal/cache"
	"github.com/ericxyz86/culturesoup/internal/domain/trend"
	"github.com/ericxyz86/culturesoup/internal/logger"
)

// Store persists finished scans for the history view. Optional.
type Store interface {
	SaveScan(ctx context.Context, result *trend.ScanResult) error
}

// Publisher announces finished scans on the event bus. Optional.
type Publisher interface {
	ScanCompleted(result *trend.ScanResult) error
}

// Config bounds one pipeline run. SourceTimeout caps each adapter
// independently; ScanTimeout caps the whole run.
type Config struct {
	ScanTimeout   time.Duration
	SourceTimeout time.Duration
}

// Scanner fans a scan out to all registered sources concurrently,
// collects whatever succeeded, runs the pipeline and stores the result.
type Scanner struct {
	sources  []trend.Source
	pipeline *Pipeline
	results  *cache.ResultCache
	store    Store
	events   Publisher
	cfg      Config
}

func NewScanner(
	sources []trend.Source,
	pipeline *Pipeline,
	results *cache.ResultCache,
	store Store,
	events Publisher,
	cfg Config,
) *Scanner {
	return &Scanner{
		sources:  sources,
		pipeline: pipeline,
		results:  results,
		store:    store,
		events:   events,
		cfg:      cfg,
	}
}

type sourceResult struct {
	name  string
	items []trend.RawItem
	err   error
}

// Scan runs one full pipeline pass. Individual source failures are
// logged and contribute zero items; they never fail the scan. Only an
// internal error fails the run, and a failed run leaves the previous
// cached result untouched. Concurrent calls are safe; the last to
// finish wins the cache slot.
func (s *Scanner) Scan(ctx context.Context) (*trend.ScanResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ScanTimeout)
	defer cancel()

	started := time.Now()
	results := make(chan sourceResult, len(s.sources))

	var wg sync.WaitGroup
	for _, src := range s.sources {
		wg.Add(1)
		go func(src trend.Source) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results <- sourceResult{name: src.Name(), err: fmt.Errorf("panic: %v", r)}
				}
			}()

			srcCtx, srcCancel := context.WithTimeout(ctx, s.cfg.SourceTimeout)
			defer srcCancel()

			items, err := src.Collect(srcCtx)
			results <- sourceResult{name: src.Name(), items: items, err: err}
		}(src)
	}
	wg.Wait()
	close(results)

	var collected []trend.RawItem
	for r := range results {
		if r.err != nil {
			logger.Warn("source scan failed", "source", r.name, "error", r.err)
			continue
		}
		logger.Info("source scan done", "source", r.name, "items", len(r.items))
		collected = append(collected, r.items...)
	}

	result := &trend.ScanResult{
		Trends:    s.pipeline.Process(collected),
		ScannedAt: time.Now(),
		Sources:   contributingSources(collected),
		RawCount:  len(collected),
	}

	s.results.Set(result)

	if s.store != nil {
		if err := s.store.SaveScan(ctx, result); err != nil {
			logger.Error("failed to persist scan", "error", err)
		}
	}
	if s.events != nil {
		if err := s.events.ScanCompleted(result); err != nil {
			logger.Error("failed to publish scan event", "error", err)
		}
	}

	logger.Info("scan complete",
		"trends", len(result.Trends),
		"raw", result.RawCount,
		"sources", len(result.Sources),
		"took", time.Since(started).Round(time.Millisecond))

	return result, nil
}

// Latest returns the most recent successful result, if any.
func (s *Scanner) Latest() (*trend.ScanResult, bool) {
	return s.results.Get()
}

func contributingSources(items []trend.RawItem) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, item := range items {
		if _, ok := seen[item.SourceName]; ok {
			continue
		}
		seen[item.SourceName] = struct{}{}
		names = append(names, item.SourceName)
	}
	sort.Strings(names)
	return names
}
