// Package ratelimit bounds the rate at which async service calls are
// started. Dropping an async handle doesn't cancel its in-flight call, so
// unbounded fan-out through ReqAsync can spawn an unbounded number of
// goroutines and sockets; a Limiter gates admission to that fan-out with a
// token bucket. Tokens are not returned when a call completes, so the number
// of calls in flight at once is not itself capped.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter is a token-bucket admission gate. A nil *Limiter always admits,
// so admission control is opt-in.
type Limiter struct {
	tokens *rate.Limiter
}

// New creates a Limiter refilling at r tokens/second up to burst.
func New(r float64, burst int) *Limiter {
	return &Limiter{tokens: rate.NewLimiter(rate.Limit(r), burst)}
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.tokens.Wait(ctx)
}

// Allow reports whether a token is immediately available, consuming one if so.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.tokens.Allow()
}
