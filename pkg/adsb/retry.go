package adsb

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RetryConfig configures retry behavior with exponential backoff.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int

	// InitialDelay is the initial backoff delay
	InitialDelay time.Duration

	// MaxDelay caps the backoff delay
	MaxDelay time.Duration

	// Multiplier is the backoff multiplier
	Multiplier float64
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   3,
		InitialDelay: time.Second,
		MaxDelay:     60 * time.Second,
		Multiplier:   2.0,
	}
}

// RetryWithBackoff executes a function with exponential backoff.
// A RateLimitError carrying a Retry-After hint overrides the computed
// backoff for that attempt. The context cancels the whole sequence.
func RetryWithBackoff(ctx context.Context, cfg RetryConfig, fn func() error) error {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("retry cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var rle *RateLimitError
		if errors.As(err, &rle) && rle.RetryAfter > 0 {
			delay = rle.RetryAfter
		} else {
			delay = time.Duration(float64(delay) * cfg.Multiplier)
		}
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("all %d retries failed: %w", cfg.MaxRetries, lastErr)
}
