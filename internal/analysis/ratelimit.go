package analysis

import (
	"context"
	"sync"
	"time"
)

// Default pacing parameters. The provider enforces a tokens-per-minute
// ceiling; token consumption per call is only an estimate, so the interval
// is computed against a reduced budget.
const (
	DefaultTokensPerMinute = 8000
	DefaultTokensPerCall   = 2150
	DefaultSafetyMargin    = 0.8
	DefaultMaxAttempts     = 5
)

// Pacer serializes outbound model calls so the aggregate rate stays under
// the token budget. It is shared process-wide: every call from every
// concurrent job must go through Acquire.
type Pacer struct {
	mu          sync.Mutex
	lastIssue   time.Time
	minInterval time.Duration
}

// NewPacer derives the minimum inter-call interval from a tokens-per-minute
// budget, an estimated token cost per call, and a safety margin in (0, 1].
func NewPacer(tokensPerMinute, tokensPerCall, safetyMargin float64) *Pacer {
	safeBudget := tokensPerMinute * safetyMargin
	interval := time.Duration(60.0 / safeBudget * tokensPerCall * float64(time.Second))
	return &Pacer{minInterval: interval}
}

// Interval returns the minimum spacing between call issuances.
func (p *Pacer) Interval() time.Duration {
	return p.minInterval
}

// Acquire blocks until it is safe to issue one external call, then records
// the issuance time. Issuance is serialized under the mutex: concurrent
// callers queue here, but no lock is held during the external call itself.
// The wait is aborted when ctx is cancelled.
func (p *Pacer) Acquire(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lastIssue.IsZero() {
		wait := p.minInterval - time.Since(p.lastIssue)
		if wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	p.lastIssue = time.Now()
	return nil
}
