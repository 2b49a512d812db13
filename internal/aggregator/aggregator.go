// Package aggregator owns the full search pipeline for one request:
// cache check → concurrent per-source fetch → merge → dedup/canonicalize →
// rank → optional match scoring. Per-source failures degrade that source's
// contribution to empty without affecting the others.
package aggregator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jobdeck/jobdeck/internal/cache"
	"github.com/jobdeck/jobdeck/internal/canon"
	"github.com/jobdeck/jobdeck/internal/model"
	"github.com/jobdeck/jobdeck/internal/rank"
	"github.com/jobdeck/jobdeck/internal/skills"
)

// Default per-source timeouts. Browser-driven sources need headroom for page
// loads and the two-step detail navigation.
const (
	DefaultAPITimeout     = 8 * time.Second
	DefaultBrowserTimeout = 15 * time.Second
)

// DefaultLimit bounds a search when the caller does not specify one.
const DefaultLimit = 20

// minPerSourceQuota is the floor of the per-source result quota.
const minPerSourceQuota = 5

// defaultQuery substitutes for an empty query so the caller still gets
// results instead of an error. Deliberate leniency; the substitution is
// logged.
const defaultQuery = "developer"

// softwareTerms classifies a query as software-related. Non-software queries
// promote the scraped general-search source, which historically yields more
// diverse, non-tech results than the API sources.
var softwareTerms = []string{
	"software", "developer", "engineer", "programming", "coder", "web", "frontend",
	"backend", "fullstack", "python", "java", "javascript", "react", "node", "angular",
}

// Options tunes an Aggregator. Zero values take defaults.
type Options struct {
	APITimeout     time.Duration
	BrowserTimeout time.Duration
}

// Aggregator fans a search out to its sources behind a shared read-through
// cache. Safe for concurrent use; each call is request-scoped with no
// background work.
type Aggregator struct {
	sources        map[model.Source]model.JobSource
	cache          *cache.Cache
	apiTimeout     time.Duration
	browserTimeout time.Duration
	logger         *slog.Logger
}

// New creates an Aggregator over the given sources. The cache is owned by the
// aggregator for its lifetime; there is no ambient global state.
func New(sources []model.JobSource, c *cache.Cache, opts Options, logger *slog.Logger) *Aggregator {
	if opts.APITimeout <= 0 {
		opts.APITimeout = DefaultAPITimeout
	}
	if opts.BrowserTimeout <= 0 {
		opts.BrowserTimeout = DefaultBrowserTimeout
	}

	byName := make(map[model.Source]model.JobSource, len(sources))
	for _, s := range sources {
		byName[s.Source()] = s
	}

	return &Aggregator{
		sources:        byName,
		cache:          c,
		apiTimeout:     opts.APITimeout,
		browserTimeout: opts.BrowserTimeout,
		logger:         logger,
	}
}

// SearchJobs runs one aggregation call. It never panics outward and never
// returns an error: a failing or slow source contributes an empty result.
// The returned listings are deduplicated, canonicalized, ranked, and — when
// the request carries resume skills — enriched with match scores.
func (a *Aggregator) SearchJobs(ctx context.Context, req model.SearchRequest) []model.JobListing {
	query := req.Query
	if query == "" {
		// Debatable leniency: substitute a default rather than fail.
		a.logger.Warn("empty query, substituting default", "default", defaultQuery)
		query = defaultQuery
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	selected := a.orderSources(query, req.Sources)
	if len(selected) == 0 {
		return []model.JobListing{}
	}

	quota := limit / len(selected)
	if quota < minPerSourceQuota {
		quota = minPerSourceQuota
	}

	// One goroutine per source, results in indexed slots so the merge order
	// follows source priority deterministically.
	results := make([][]model.JobListing, len(selected))
	var wg sync.WaitGroup
	for i, source := range selected {
		wg.Add(1)
		go func(slot int, src model.JobSource) {
			defer wg.Done()
			results[slot] = a.fetchOne(ctx, src, query, req.Location, quota)
		}(i, source)
	}
	wg.Wait()

	var merged []model.JobListing
	for _, r := range results {
		merged = append(merged, r...)
	}

	jobs := canon.Deduplicate(merged)
	rank.Sort(jobs, query)

	if len(jobs) > limit {
		jobs = jobs[:limit]
	}

	if len(req.ResumeSkills) > 0 {
		for i := range jobs {
			score, matching := skills.Match(req.ResumeSkills, jobs[i].Skills)
			jobs[i].MatchScore = score
			jobs[i].MatchingSkills = matching
			jobs[i].Scored = true
		}
	}

	a.logger.Info("search complete",
		"query", query,
		"location", req.Location,
		"sources", len(selected),
		"merged", len(merged),
		"returned", len(jobs),
	)

	return jobs
}

// fetchOne resolves one source's contribution through the cache, invoking the
// adapter on a miss under its per-source timeout. All faults — errors,
// timeouts, panics — degrade to an empty contribution (bulkhead isolation).
func (a *Aggregator) fetchOne(ctx context.Context, src model.JobSource, query, location string, quota int) (listings []model.JobListing) {
	name := src.Source()

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("source panicked", "source", name, "panic", r)
			listings = nil
		}
	}()

	key := cache.Key{Source: name, Query: query, Location: location, Limit: quota}
	if cached, ok := a.cache.Get(key); ok {
		a.logger.Debug("cache hit", "source", name, "listings", len(cached))
		return cached
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeoutFor(name))
	defer cancel()

	fetched, err := src.Search(callCtx, query, location, quota)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCredentialsMissing):
			a.logger.Debug("source skipped", "source", name, "reason", "credentials not configured")
		case errors.Is(err, context.DeadlineExceeded):
			a.logger.Warn("source timed out", "source", name, "timeout", a.timeoutFor(name))
		default:
			a.logger.Warn("source unavailable", "source", name, "error", err)
		}
		return nil
	}

	// Empty results are cached too: a source that returned nothing is not
	// hammered again until the TTL elapses.
	a.cache.Set(key, fetched)

	a.logger.Debug("source fetched", "source", name, "listings", len(fetched))
	return fetched
}

// orderSources resolves the requested subset (default: all registered) into
// priority order, promoting the scraped general-search source for queries
// that do not look software-related.
func (a *Aggregator) orderSources(query string, requested []model.Source) []model.JobSource {
	names := requested
	if len(names) == 0 {
		names = model.AllSources()
	}

	var ordered []model.JobSource
	for _, name := range names {
		if src, ok := a.sources[name]; ok {
			ordered = append(ordered, src)
		}
	}

	if !isSoftwareQuery(query) {
		for i, src := range ordered {
			if src.Source() == model.SourceWebSearch && i > 0 {
				copy(ordered[1:i+1], ordered[:i])
				ordered[0] = src
				break
			}
		}
	}

	return ordered
}

// timeoutFor picks the per-source timeout by transport kind.
func (a *Aggregator) timeoutFor(source model.Source) time.Duration {
	switch source {
	case model.SourceWebSearch, model.SourceLegacyBoard:
		return a.browserTimeout
	default:
		return a.apiTimeout
	}
}

// isSoftwareQuery checks the query against the software-related term set.
func isSoftwareQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, term := range softwareTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
