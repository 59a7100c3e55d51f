package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// LineLimiter throttles line processing to a fixed lines-per-second budget
// so very large dumps can be normalized without saturating disk IO
type LineLimiter struct {
	limiter *rate.Limiter
}

// NewLineLimiter creates a limiter allowing linesPerSecond sustained
// throughput with the given burst
func NewLineLimiter(linesPerSecond float64, burst int) *LineLimiter {
	if burst <= 0 {
		burst = 1
	}

	return &LineLimiter{
		limiter: rate.NewLimiter(rate.Limit(linesPerSecond), burst),
	}
}

// Wait blocks until the next line may be processed
func (l *LineLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow checks whether a line may be processed without waiting
func (l *LineLimiter) Allow() bool {
	return l.limiter.Allow()
}
