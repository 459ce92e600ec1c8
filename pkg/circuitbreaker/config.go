package circuitbreaker

import "time"

// Config holds the configuration for a circuit breaker guarding one upstream.
type Config struct {
	// Name identifies the upstream in logs.
	Name string

	// Enabled determines whether the circuit breaker is active.
	// When false, New returns nil and Execute passes through directly.
	Enabled bool

	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint

	// Interval clears the failure counts while closed. Zero never clears them.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint

	// IsFailure decides whether an error counts against the upstream.
	// Nil counts every error.
	IsFailure func(err error) bool

	// OnStateChange is notified on every transition.
	OnStateChange func(name string, from, to State)
}
