package model

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindNetwork ErrorKind = "network"
	KindHTTP    ErrorKind = "http"
	KindConfig  ErrorKind = "config"
	KindCache   ErrorKind = "cache"

	maxBodyInMessage = 512
)

var (
	ErrContentCredentialsMissing = errors.New("content API credentials are not configured")

	// ErrNotFound is returned by lookups that search a collection, such as a customer by email.
	ErrNotFound = errors.New("not found")
)

type (
	// NetworkError means the request was sent but no response arrived:
	// connection refused or reset, DNS failure, socket timeout.
	NetworkError struct {
		Method string
		URL    string
		Err    error
	}

	// HTTPError means the upstream answered with a non-2xx status.
	HTTPError struct {
		Method string
		URL    string
		Status int
		Body   []byte
	}

	// ConfigError means the request could not be built from configuration,
	// such as a malformed base URL or missing credentials.
	ConfigError struct {
		Field  string
		Reason string
		Err    error
	}

	// CacheError is logged by the cache layer and never returned to callers.
	CacheError struct {
		Op  string
		Key string
		Err error
	}
)

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Kind() ErrorKind { return KindNetwork }

func (e *HTTPError) Error() string {
	body := string(e.Body)
	if len(body) > maxBodyInMessage {
		body = body[:maxBodyInMessage] + "..."
	}

	if body == "" {
		return fmt.Sprintf("%s %s: upstream responded %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
	}

	return fmt.Sprintf("%s %s: upstream responded %d %s: %s", e.Method, e.URL, e.Status, http.StatusText(e.Status), body)
}

func (e *HTTPError) Kind() ErrorKind { return KindHTTP }

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration %s: %s: %v", e.Field, e.Reason, e.Err)
	}

	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Kind() ErrorKind { return KindConfig }

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }

func (e *CacheError) Kind() ErrorKind { return KindCache }

func IsNetworkError(err error) bool {
	var target *NetworkError

	return errors.As(err, &target)
}

// IsServerError holds for upstream 5xx responses.
func IsServerError(err error) bool {
	var target *HTTPError

	return errors.As(err, &target) && target.Status >= http.StatusInternalServerError
}

func IsRateLimited(err error) bool {
	var target *HTTPError

	return errors.As(err, &target) && target.Status == http.StatusTooManyRequests
}

func IsConfigError(err error) bool {
	var target *ConfigError

	return errors.As(err, &target)
}

// IsTransient holds for failures likely to succeed when retried.
func IsTransient(err error) bool {
	return IsNetworkError(err) || IsServerError(err) || IsRateLimited(err)
}

// StatusOf returns the upstream status carried by err, or zero.
func StatusOf(err error) int {
	var target *HTTPError
	if errors.As(err, &target) {
		return target.Status
	}

	return 0
}
