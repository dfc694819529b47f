package ratelimit

import (
	"context"
	"time"

	limiter "github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"
)

// Limiter decides whether an event identified by key is within its rate limit.
type Limiter interface {
	Allow(ctx context.Context, key string, window time.Duration, max int) (allowed bool, remaining int, reset time.Time, err error)
}

// MemoryLimiter enforces per-key limits using an in-process store.
type MemoryLimiter struct {
	store limiter.Store
}

// NewMemoryLimiter constructs a limiter backed by an in-memory store.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{store: limitermem.NewStore()}
}

// Allow registers an event for the given key and returns whether it is within the limit.
func (l *MemoryLimiter) Allow(ctx context.Context, key string, window time.Duration, max int) (bool, int, time.Time, error) {
	if l == nil || l.store == nil || max <= 0 || window <= 0 {
		return true, max, time.Now().Add(window), nil
	}

	instance := limiter.New(l.store, limiter.Rate{Period: window, Limit: int64(max)})
	res, err := instance.Get(ctx, key)
	if err != nil {
		return false, 0, time.Now().Add(window), err
	}

	remaining := int(res.Remaining)
	if remaining < 0 {
		remaining = 0
	}
	reset := time.Unix(res.Reset, 0)
	return !res.Reached, remaining, reset, nil
}
