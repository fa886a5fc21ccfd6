// Package analyzer evaluates a fetched page against rule-based SEO
// checks grouped into categories, and aggregates them into a score.
package analyzer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/seo-page-analyzer/backend/fetcher"
	"github.com/seo-page-analyzer/backend/metrics"
	"github.com/seo-page-analyzer/backend/stats"
)

// Fetcher is the collaborator that retrieves page HTML. A failed fetch
// is reported inside the Result, never as an error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) fetcher.Result
}

type cacheEntry struct {
	result    *AnalysisResult
	timestamp time.Time
}

// CacheStats describes the state of the analysis cache and fetch
// outcome counters for the current month.
type CacheStats struct {
	Entries        int           `json:"entries"`
	CacheHits      int           `json:"cacheHits"`
	CacheMisses    int           `json:"cacheMisses"`
	FetchSuccesses int           `json:"fetchSuccesses"`
	FetchFailures  int           `json:"fetchFailures"`
	CacheTTL       time.Duration `json:"cacheTtl"`
}

// Analyzer runs SEO analyses and caches results per URL+keyword. The
// evaluation itself is stateless; concurrent Analyze calls are safe.
type Analyzer struct {
	fetcher         Fetcher
	cache           map[string]cacheEntry
	cacheMutex      sync.RWMutex
	cacheTTL        time.Duration
	maxCacheSize    int
	lastCleanup     time.Time
	cleanupInterval time.Duration
	stats           *stats.Storage
}

// New creates an Analyzer with the default HTTP fetcher. dataDir holds
// the persisted monthly statistics.
func New(dataDir string) (*Analyzer, error) {
	return NewWithFetcher(dataDir, fetcher.NewClient())
}

// NewWithFetcher creates an Analyzer around a custom fetch collaborator.
func NewWithFetcher(dataDir string, f Fetcher) (*Analyzer, error) {
	statsStorage, err := stats.NewStorage(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stats storage: %w", err)
	}

	a := &Analyzer{
		fetcher:         f,
		cache:           make(map[string]cacheEntry),
		cacheTTL:        30 * time.Minute,
		maxCacheSize:    1000,
		cleanupInterval: 5 * time.Minute,
		lastCleanup:     time.Now(),
		stats:           statsStorage,
	}

	go a.periodicCleanup()

	return a, nil
}

func (a *Analyzer) periodicCleanup() {
	ticker := time.NewTicker(a.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		a.cleanup()
	}
}

// cleanup drops expired entries and, if the cache is still over its
// size cap, evicts the oldest entries.
func (a *Analyzer) cleanup() {
	now := time.Now()

	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()

	for key, entry := range a.cache {
		if now.Sub(entry.timestamp) > a.cacheTTL {
			delete(a.cache, key)
		}
	}

	if len(a.cache) > a.maxCacheSize {
		entries := make([]struct {
			key       string
			timestamp time.Time
		}, 0, len(a.cache))
		for key, entry := range a.cache {
			entries = append(entries, struct {
				key       string
				timestamp time.Time
			}{key, entry.timestamp})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].timestamp.Before(entries[j].timestamp)
		})
		for i := 0; i < len(entries)-a.maxCacheSize; i++ {
			delete(a.cache, entries[i].key)
		}
	}

	a.lastCleanup = now
}

// SetMaxCacheSize sets the cache size cap and evicts immediately if the
// new cap is smaller.
func (a *Analyzer) SetMaxCacheSize(size int) {
	a.cacheMutex.Lock()
	a.maxCacheSize = size
	a.cacheMutex.Unlock()
	a.cleanup()
}

// SetCacheTTL sets how long cached analyses stay valid.
func (a *Analyzer) SetCacheTTL(ttl time.Duration) {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cacheTTL = ttl
}

// ClearCache drops every cached analysis.
func (a *Analyzer) ClearCache() {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cache = make(map[string]cacheEntry)
}

func cacheKey(url, keyword string) string {
	hash := md5.Sum([]byte(url + "|" + keyword))
	return hex.EncodeToString(hash[:])
}

// IsCached reports whether a URL+keyword pair has a fresh cached result.
func (a *Analyzer) IsCached(url, keyword string) bool {
	a.cacheMutex.RLock()
	defer a.cacheMutex.RUnlock()

	entry, found := a.cache[cacheKey(url, keyword)]
	return found && time.Since(entry.timestamp) < a.cacheTTL
}

// GetCacheStats returns cache occupancy and this month's counters.
func (a *Analyzer) GetCacheStats() CacheStats {
	current := a.stats.GetCurrentStats()

	a.cacheMutex.RLock()
	entries := len(a.cache)
	ttl := a.cacheTTL
	a.cacheMutex.RUnlock()

	return CacheStats{
		Entries:        entries,
		CacheHits:      current.CacheHits,
		CacheMisses:    current.CacheMisses,
		FetchSuccesses: current.FetchSuccesses,
		FetchFailures:  current.FetchFailures,
		CacheTTL:       ttl,
	}
}

// Analyze fetches url and evaluates every category against it, serving
// repeated requests from the cache. An unreachable URL still yields a
// complete result with every check informational; the returned error is
// reserved for infrastructure problems, not fetch failures.
func (a *Analyzer) Analyze(url, keyword string) (*AnalysisResult, error) {
	a.cacheMutex.RLock()
	cleanupDue := time.Since(a.lastCleanup) > a.cleanupInterval
	a.cacheMutex.RUnlock()
	if cleanupDue {
		go a.cleanup()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	key := cacheKey(url, keyword)
	a.cacheMutex.RLock()
	if entry, found := a.cache[key]; found {
		if time.Since(entry.timestamp) < a.cacheTTL {
			a.cacheMutex.RUnlock()
			a.stats.IncrementStats(1, 0, 0, 0)
			metrics.CacheHits.Inc()
			return entry.result, nil
		}
	}
	a.cacheMutex.RUnlock()

	a.stats.IncrementStats(0, 1, 0, 0)
	metrics.CacheMisses.Inc()

	result := a.AnalyzeWithContext(ctx, url, keyword)

	// A failed fetch is often transient; caching its degraded result
	// would pin a zero score for the whole TTL.
	if result.ContentFetched {
		a.cacheMutex.Lock()
		a.cache[key] = cacheEntry{result: result, timestamp: time.Now()}
		a.cacheMutex.Unlock()
	}

	return result, nil
}

// AnalyzeWithContext runs one uncached analysis: fetch, extract facts,
// evaluate categories, aggregate the score.
func (a *Analyzer) AnalyzeWithContext(ctx context.Context, url, keyword string) *AnalysisResult {
	start := time.Now()

	fetched := a.fetcher.Fetch(ctx, url)

	var facts *PageFacts
	if fetched.Success {
		facts = ExtractPageFacts(fetched.Content, url, fetched.Headers)
		a.stats.IncrementStats(0, 0, 1, 0)
		metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	} else {
		facts = DegradedFacts()
		a.stats.IncrementStats(0, 0, 0, 1)
		metrics.AnalysesTotal.WithLabelValues("fetch_failed").Inc()
	}

	result := AnalyzeFacts(facts, keyword, url)
	result.FetchError = fetched.Error

	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	return result
}

// AnalyzeFacts is the pure core of the engine: deterministic for a
// given facts snapshot, keyword, and URL. It performs no I/O.
func AnalyzeFacts(facts *PageFacts, keyword, url string) *AnalysisResult {
	categories := BuildCategories(facts, keyword, url)
	return &AnalysisResult{
		URL:            url,
		Keyword:        keyword,
		ContentFetched: facts.ContentFetched,
		Score:          OverallScore(categories),
		Categories:     categories,
	}
}

// GetStats exposes the statistics storage for the HTTP layer.
func (a *Analyzer) GetStats() *stats.Storage {
	return a.stats
}

// Shutdown flushes statistics and releases the cache.
func (a *Analyzer) Shutdown() error {
	if a == nil {
		return nil
	}

	if a.stats != nil {
		if err := a.stats.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown stats storage: %w", err)
		}
	}

	a.cacheMutex.Lock()
	a.cache = nil
	a.cacheMutex.Unlock()

	return nil
}
