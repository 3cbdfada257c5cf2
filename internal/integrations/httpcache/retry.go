// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-15
// Last Modified: 2026-10-19

package httpcache

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig holds configuration for exponential backoff retry of GETs.
type RetryConfig struct {
	MaxRetries  uint64        // Maximum number of retry attempts (default: 5)
	BaseDelay   time.Duration // Initial delay before first retry (default: 1s)
	MaxDelay    time.Duration // Maximum delay cap (default: 60s)
	JitterRatio float64       // Jitter as fraction of delay, 0.0-1.0 (default: 0.25)
}

// DefaultRetryConfig returns sensible defaults for read retries.
// Defaults: 5 retries, 1s base delay, 60s max delay, 25% jitter.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:  5,
		BaseDelay:   1 * time.Second,
		MaxDelay:    60 * time.Second,
		JitterRatio: 0.25,
	}
}

// newBackOff builds a fresh backoff; BackOff values are stateful.
func (c RetryConfig) newBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.BaseDelay
	bo.MaxInterval = c.MaxDelay
	bo.RandomizationFactor = c.JitterRatio
	bo.MaxElapsedTime = 0 // bounded by MaxRetries instead
	return backoff.WithMaxRetries(bo, c.MaxRetries)
}

// isRetryableStatus reports whether a GET answered with code is worth
// repeating: rate limiting and gateway errors. Other 4xx/5xx are final.
func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// transientStatusError marks a response that should be retried.
type transientStatusError struct {
	code int
}

func (e *transientStatusError) Error() string {
	return fmt.Sprintf("transient status %d", e.code)
}
