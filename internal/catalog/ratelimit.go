package catalog

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Default rate limits per catalog (requests per second). Both public APIs
// tolerate short bursts but throttle sustained traffic.
var defaultRateLimits = map[Name]rate.Limit{
	NameDeezer: 5,
	NameITunes: 2,
}

// RateLimiterMap holds one rate.Limiter per catalog, created once at startup.
type RateLimiterMap struct {
	mu       sync.RWMutex
	limiters map[Name]*rate.Limiter
}

// NewRateLimiterMap creates all catalog rate limiters.
func NewRateLimiterMap() *RateLimiterMap {
	m := &RateLimiterMap{
		limiters: make(map[Name]*rate.Limiter, len(defaultRateLimits)),
	}
	for name, limit := range defaultRateLimits {
		m.limiters[name] = rate.NewLimiter(limit, 1)
	}
	return m
}

// Wait blocks until the rate limiter for the given catalog allows a request,
// or the context is canceled.
func (m *RateLimiterMap) Wait(ctx context.Context, name Name) error {
	m.mu.RLock()
	limiter, ok := m.limiters[name]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	return limiter.Wait(ctx)
}
