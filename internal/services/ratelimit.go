package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	r       rate.Limit
	burst   int
	logger  *slog.Logger
}

func NewIPRateLimiter(r rate.Limit, burst int, logger *slog.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		buckets: make(map[string]*rate.Limiter),
		r:       r,
		burst:   burst,
		logger:  logger,
	}
}

// Allow reports whether a request from ip may proceed.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	bucket, ok := l.buckets[ip]
	if !ok {
		bucket = rate.NewLimiter(l.r, l.burst)
		l.buckets[ip] = bucket
	}
	l.mu.Unlock()

	return bucket.Allow()
}

// StartCleanup resets the bucket map when it grows past a bound, so
// one-off IPs don't accumulate forever.
func (l *IPRateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.mu.Lock()
				if len(l.buckets) > 10000 {
					l.logger.Info("Resetting rate limiter map", "count", len(l.buckets))
					l.buckets = make(map[string]*rate.Limiter)
				}
				l.mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()
}
