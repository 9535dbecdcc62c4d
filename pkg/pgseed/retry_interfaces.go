package pgseed

import "time"

// ErrorClassifier decides whether a failed operation may be retried.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy computes the wait before each retry attempt.
type BackoffStrategy interface {
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the retry limit; negative means unlimited.
	MaxAttempts() int
}
