// ABOUTME: Retry utilities for oracle calls with exponential backoff
// ABOUTME: Shared by the LLM client and validated generator for consistent retry behavior
package util

import "time"

// CalculateBackoff returns exponential backoff clamped to [minDelay, maxDelay].
// Base delay is doubled each attempt.
func CalculateBackoff(baseDelay time.Duration, attempt int, minDelay, maxDelay time.Duration) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap attempt to avoid overflow in bit shift
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt-1))
	if backoff < minDelay {
		backoff = minDelay
	}
	if backoff > maxDelay {
		backoff = maxDelay
	}
	return backoff
}
