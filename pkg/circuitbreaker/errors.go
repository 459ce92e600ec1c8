package circuitbreaker

import "errors"

var (
	// ErrCircuitOpen means the upstream is considered down and calls are rejected locally.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrTooManyRequests means the half-open trial budget is used up.
	ErrTooManyRequests = errors.New("too many requests in half-open state")
)
