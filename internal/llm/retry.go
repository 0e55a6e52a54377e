package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

// StatusError reports a non-200 reply from a model runner. Codes in the
// 5xx range and 429 are retryable; everything else is fatal.
type StatusError struct {
	Backend string
	Code    int
	Body    string
}

// Error implements error.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Backend, e.Code)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Backend, e.Code, e.Body)
}

// Retryable reports whether the status suggests a transient condition.
func (e *StatusError) Retryable() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// IsRetryable classifies an error as transient (worth another attempt)
// or fatal. Context cancellation is always fatal: the caller gave up.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// Connection-level failures surface as *net.OpError (refused, reset).
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// RetryConfig controls the retry wrapper.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the first backoff delay; it doubles per attempt.
	BaseDelay time.Duration
	// MaxDelay caps the backoff.
	MaxDelay time.Duration
}

// DefaultRetryConfig matches the behavior used across FedScout commands.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// RetryingRunner wraps a Runner with retry on transient failures.
type RetryingRunner struct {
	inner Runner
	cfg   RetryConfig
}

// WithRetry wraps the runner. A zero MaxAttempts falls back to defaults.
func WithRetry(inner Runner, cfg RetryConfig) *RetryingRunner {
	if cfg.MaxAttempts < 1 {
		cfg = DefaultRetryConfig()
	}
	return &RetryingRunner{inner: inner, cfg: cfg}
}

// Name implements Runner.
func (r *RetryingRunner) Name() string { return r.inner.Name() }

// Generate implements Runner, retrying transient failures with capped
// exponential backoff.
func (r *RetryingRunner) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	delay := r.cfg.BaseDelay

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return nil, err
		}
		if attempt == r.cfg.MaxAttempts {
			break
		}

		log.Printf("[llm] %s: attempt %d failed (%v), retrying in %s", r.inner.Name(), attempt, err, delay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > r.cfg.MaxDelay {
			delay = r.cfg.MaxDelay
		}
	}

	return nil, fmt.Errorf("%s: giving up after %d attempts: %w", r.inner.Name(), r.cfg.MaxAttempts, lastErr)
}
