package analysis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/board-panel/internal/advisory"
)

// Backoff parameters for rate-limit retries.
const (
	// backoffBase is the exponential backoff base: base * 2^attempt.
	backoffBase = 10 * time.Second
	// retryAfterPadding is added to provider-suggested waits.
	retryAfterPadding = 2 * time.Second
)

// attemptFunc runs one full five-call panel attempt. On failure it returns
// whatever task outputs were collected before the error.
type attemptFunc func(ctx context.Context) ([]*advisory.TaskOutput, error)

// RetryController reruns a panel attempt on transient failures. Retry is
// selective by error kind: rate limits back off and retry, schema failures
// stop retrying and hand partial outputs to extraction, anything else
// propagates immediately.
type RetryController struct {
	maxAttempts int
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewRetryController creates a controller with the given attempt budget.
func NewRetryController(maxAttempts int) *RetryController {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryController{
		maxAttempts: maxAttempts,
		sleep:       sleepCtx,
	}
}

// Run executes attempt up to the attempt budget.
//
// A nil error from attempt ends the loop. A schema-classified failure also
// ends the loop but is swallowed: the partial outputs are returned so the
// extractor can salvage them, since retrying a systematic formatting problem
// just burns budget. A rate-limit failure sleeps and retries while attempts
// remain; exhaustion converts it to a terminal PanelError. Any other
// failure is fatal on the spot.
func (r *RetryController) Run(ctx context.Context, attempt attemptFunc) ([]*advisory.TaskOutput, error) {
	for i := 0; i < r.maxAttempts; i++ {
		outputs, err := attempt(ctx)
		if err == nil {
			return outputs, nil
		}

		switch Classify(err) {
		case KindSchema:
			log.Printf("panel attempt %d/%d: validation failure, proceeding to extraction with %d outputs: %v",
				i+1, r.maxAttempts, len(outputs), err)
			return outputs, nil

		case KindRateLimit:
			if i == r.maxAttempts-1 {
				return nil, &PanelError{
					Kind:    KindRateLimit,
					Message: fmt.Sprintf("rate limit exceeded after %d retries", r.maxAttempts),
					Cause:   err,
				}
			}
			delay := r.backoff(i, err)
			log.Printf("panel attempt %d/%d: rate limit hit, waiting %s before retry: %v",
				i+1, r.maxAttempts, delay, err)
			if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
				return nil, &PanelError{
					Kind:    KindFatal,
					Message: "cancelled while waiting for rate limit",
					Cause:   sleepErr,
				}
			}

		default:
			return nil, &PanelError{
				Kind:    KindFatal,
				Message: "panel attempt failed",
				Cause:   err,
			}
		}
	}

	// Unreachable: every loop exit path returns above.
	return nil, &PanelError{Kind: KindFatal, Message: "no result returned from panel"}
}

// backoff computes the wait before the next attempt: the larger of the
// provider-suggested wait (plus padding) and exponential backoff.
func (r *RetryController) backoff(attempt int, err error) time.Duration {
	delay := backoffBase * (1 << attempt)
	if suggested, ok := parseRetryAfter(err.Error()); ok {
		if suggested+retryAfterPadding > delay {
			delay = suggested + retryAfterPadding
		}
	}
	return delay
}

// sleepCtx sleeps for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
