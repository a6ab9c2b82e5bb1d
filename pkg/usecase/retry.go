package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/vendorfetch/pkg/domain/interfaces"
	"github.com/m-mizutani/vendorfetch/pkg/domain/model"
	"github.com/m-mizutani/vendorfetch/pkg/domain/types"
)

// Default retry policy
const (
	DefaultMaxAttempts = 5
	DefaultBaseDelay   = 2 * time.Second
)

// WaitFunc suspends for d or until ctx is done
type WaitFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default WaitFunc
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryAll retries every error. This is the default policy.
func RetryAll(error) bool {
	return true
}

// RetryTransient retries everything except malformed payloads, which will not
// change between identical requests.
func RetryTransient(err error) bool {
	return !goerr.HasTag(err, types.ErrTagDecode)
}

// RetryOption configures a Retrier
type RetryOption func(*Retrier)

// WithMaxAttempts sets the attempt ceiling. Values below 1 are treated as 1.
func WithMaxAttempts(n int) RetryOption {
	return func(r *Retrier) {
		r.maxAttempts = max(n, 1)
	}
}

// WithBaseDelay sets the delay unit; the wait after failed attempt k is k*d
func WithBaseDelay(d time.Duration) RetryOption {
	return func(r *Retrier) {
		r.baseDelay = max(d, 0)
	}
}

// WithRetryable sets the policy deciding whether a failed attempt is retried
func WithRetryable(fn func(error) bool) RetryOption {
	return func(r *Retrier) {
		r.retryable = fn
	}
}

// WithWait replaces the backoff wait, mainly for tests
func WithWait(fn WaitFunc) RetryOption {
	return func(r *Retrier) {
		r.wait = fn
	}
}

// Retrier runs a Fetcher in a bounded loop with linear backoff. It keeps no
// state between calls; every FetchWithRetry owns its own attempt history.
type Retrier struct {
	maxAttempts int
	baseDelay   time.Duration
	retryable   func(error) bool
	wait        WaitFunc
}

// NewRetrier creates a Retrier with 5 attempts and a 2s base delay unless overridden
func NewRetrier(opts ...RetryOption) *Retrier {
	r := &Retrier{
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		retryable:   RetryAll,
		wait:        Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxAttempts returns the attempt ceiling
func (r *Retrier) MaxAttempts() int {
	return r.maxAttempts
}

// Delay returns the wait inserted after failed attempt k, before attempt k+1
func (r *Retrier) Delay(k int) time.Duration {
	return r.baseDelay * time.Duration(k)
}

// FetchWithRetry calls fetcher until it succeeds, the policy refuses a retry or
// the attempt ceiling is reached. Attempts are returned in order either way.
// Failures are reported as *types.FetchExhaustedError wrapping the last error.
func (r *Retrier) FetchWithRetry(ctx context.Context, fetcher interfaces.Fetcher, path string) ([]byte, []model.DownloadAttempt, error) {
	logger := ctxlog.From(ctx)

	attempts := make([]model.DownloadAttempt, 0, r.maxAttempts)
	var delay time.Duration

	for k := 1; k <= r.maxAttempts; k++ {
		if k > 1 {
			if err := r.wait(ctx, delay); err != nil {
				return nil, attempts, goerr.Wrap(err, "backoff interrupted",
					goerr.T(types.ErrTagCanceled), goerr.V("path", path), goerr.V("attempt", k))
			}
		}

		content, err := fetcher.FetchOnce(ctx, path)
		attempts = append(attempts, model.DownloadAttempt{Index: k, Delay: delay, Err: err})
		if err == nil {
			return content, attempts, nil
		}

		logger.Warn("Fetch attempt failed",
			"path", path,
			"attempt", k,
			"max_attempts", r.maxAttempts,
			"kind", types.Kind(err),
			"error", err,
		)

		if !r.retryable(err) {
			return nil, attempts, &types.FetchExhaustedError{Path: path, Attempts: k, Last: err}
		}

		delay = r.Delay(k)
	}

	return nil, attempts, &types.FetchExhaustedError{
		Path:     path,
		Attempts: r.maxAttempts,
		Last:     attempts[len(attempts)-1].Err,
	}
}
