package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jobdeck/jobdeck/internal/model"
)

// SourceRateLimiter enforces a minimum delay between successive requests to
// the same external source. Primarily a politeness guard for the
// browser-driven scrape sources.
type SourceRateLimiter struct {
	mu       sync.Mutex
	lastCall map[model.Source]time.Time
	minDelay time.Duration
}

// NewSourceRateLimiter creates a rate limiter that enforces minDelay between
// consecutive requests to the same source.
func NewSourceRateLimiter(minDelay time.Duration) *SourceRateLimiter {
	return &SourceRateLimiter{
		lastCall: make(map[model.Source]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until enough time has passed since the last request to the
// given source. Returns an error if the context is cancelled while waiting.
func (r *SourceRateLimiter) Wait(ctx context.Context, source model.Source) error {
	r.mu.Lock()
	last, ok := r.lastCall[source]
	now := time.Now()

	if !ok {
		// First request for this source — no wait needed.
		r.lastCall[source] = now
		r.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed >= r.minDelay {
		r.lastCall[source] = now
		r.mu.Unlock()
		return nil
	}

	remaining := r.minDelay - elapsed
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", source, ctx.Err())
	case <-time.After(remaining):
	}

	// Record the actual time after waiting.
	r.mu.Lock()
	r.lastCall[source] = time.Now()
	r.mu.Unlock()

	return nil
}

// RateLimitedSource is a decorator that enforces the minimum inter-call delay
// before delegating to the wrapped JobSource. Concurrent searches hitting the
// same scraped site share one limiter instance.
type RateLimitedSource struct {
	inner   model.JobSource
	limiter *SourceRateLimiter
}

// NewRateLimitedSource wraps a JobSource with source-level rate limiting.
func NewRateLimitedSource(inner model.JobSource, limiter *SourceRateLimiter) *RateLimitedSource {
	return &RateLimitedSource{inner: inner, limiter: limiter}
}

// Source identifies the wrapped source.
func (s *RateLimitedSource) Source() model.Source {
	return s.inner.Source()
}

// Search waits for the rate limiter to allow a request, then delegates to the
// wrapped source.
func (s *RateLimitedSource) Search(ctx context.Context, query, location string, limit int) ([]model.JobListing, error) {
	if err := s.limiter.Wait(ctx, s.inner.Source()); err != nil {
		return nil, err
	}
	return s.inner.Search(ctx, query, location, limit)
}
