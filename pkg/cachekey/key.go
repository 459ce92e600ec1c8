// Package cachekey derives deterministic, namespaced cache keys for upstream responses.
package cachekey

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	Namespace = "storetools"
	Version   = "v1"

	Wildcard = "*"

	itemSegment = "item"
	listSegment = "list"
)

var (
	ErrResourceEmpty   = errors.New("cache key resource must not be empty")
	ErrResourceInvalid = errors.New("cache key resource contains invalid characters")

	validResourcePattern = regexp.MustCompile(`^[a-z0-9_.\-]+$`)
)

// Keyspace scopes keys to one upstream resource type, e.g. "products" or
// "orders.notes".
type Keyspace struct {
	resource string
}

func New(resource string) (Keyspace, error) {
	if resource == "" {
		return Keyspace{}, ErrResourceEmpty
	}

	if !validResourcePattern.MatchString(resource) {
		return Keyspace{}, ErrResourceInvalid
	}

	return Keyspace{resource: resource}, nil
}

// MustNew panics on an invalid resource name. Use for static keyspaces.
func MustNew(resource string) Keyspace {
	ks, err := New(resource)
	if err != nil {
		panic(fmt.Sprintf("cachekey: %q: %v", resource, err))
	}

	return ks
}

func (k Keyspace) Resource() string {
	return k.resource
}

// Item is the key of one entity, e.g. storetools:v1:products:item:42.
// Multiple parts identify nested entities such as an order note.
func (k Keyspace) Item(parts ...any) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		segments = append(segments, fmt.Sprint(part))
	}

	return k.prefix() + itemSegment + ":" + strings.Join(segments, ":")
}

// List is the key of one collection view, hashed from its parameters.
func (k Keyspace) List(params any) string {
	return k.prefix() + listSegment + ":" + Hash(params)
}

// ListPattern matches every collection view of the resource.
func (k Keyspace) ListPattern() string {
	return k.prefix() + listSegment + ":" + Wildcard
}

// Pattern matches every key of the resource.
func (k Keyspace) Pattern() string {
	return k.prefix() + Wildcard
}

func (k Keyspace) prefix() string {
	return Namespace + ":" + Version + ":" + k.resource + ":"
}

// Hash returns the 16 hex digit xxhash64 of the JSON encoding of v.
// encoding/json sorts map keys, so equal parameter bags hash equally.
func Hash(v any) string {
	payload, err := json.Marshal(v)
	if err != nil {
		payload = []byte(fmt.Sprintf("%#v", v))
	}

	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}

// IsPattern reports whether key ends with the wildcard.
func IsPattern(key string) bool {
	return strings.HasSuffix(key, Wildcard)
}

// PatternPrefix strips the trailing wildcard.
func PatternPrefix(pattern string) string {
	return strings.TrimSuffix(pattern, Wildcard)
}
