// Package ratelimit spaces out calls to rate-limited APIs.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter is a token bucket shared by all callers of one API
type Limiter struct {
	perSecond  float64
	mu         sync.Mutex
	tokens     float64   // Available tokens (requests)
	lastUpdate time.Time // Last time tokens were updated
	bucketSize float64   // Maximum tokens (burst size)
}

// NewLimiter allows perMinute requests per minute with bursts of up to
// burst requests. A non-positive rate returns nil, which never waits.
func NewLimiter(perMinute, burst int) *Limiter {
	if perMinute <= 0 {
		return nil // No limiting
	}
	if burst < 1 {
		burst = 1
	}

	return &Limiter{
		perSecond:  float64(perMinute) / 60,
		tokens:     float64(burst), // Start with full bucket
		lastUpdate: time.Now(),
		bucketSize: float64(burst),
	}
}

// Wait blocks until a request may be made or ctx is done
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}

	for {
		l.mu.Lock()
		l.refillTokens()

		if l.tokens >= 1 {
			l.tokens--
			l.mu.Unlock()
			return nil
		}

		// Calculate wait time
		deficit := 1 - l.tokens
		waitTime := time.Duration(deficit / l.perSecond * float64(time.Second))
		if waitTime < time.Millisecond {
			waitTime = time.Millisecond
		}
		l.mu.Unlock()

		timer := time.NewTimer(waitTime)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// refillTokens adds tokens based on elapsed time (must be called with lock held)
func (l *Limiter) refillTokens() {
	now := time.Now()
	elapsed := now.Sub(l.lastUpdate)

	l.tokens += elapsed.Seconds() * l.perSecond
	if l.tokens > l.bucketSize {
		l.tokens = l.bucketSize
	}
	l.lastUpdate = now
}
