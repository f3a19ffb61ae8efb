// Package cache defines the external KV-cache capability spec.md §9's
// design notes prescribe: get_range/append/set_meta/expire, with a "none"
// implementation and a real client. Every method returns error but callers
// (internal/session) are expected to log and fall back to the session path
// on any failure — cache failure must never propagate to the solver.
package cache

import (
	"encoding/json"
	"time"
)

// Meta is the companion record stored at a fingerprint's ":meta" key.
type Meta struct {
	Total     int  `json:"total"`
	Exhausted bool `json:"exhausted"`
}

// Cache is the capability interface every backend implements. Boards are
// stored as opaque JSON blobs; this package doesn't know their shape.
type Cache interface {
	// GetRange returns up to count entries starting at index start, and
	// whether the key exists at all.
	GetRange(key string, start, count int) (entries [][]byte, found bool, err error)
	// Append adds entries to the end of the list at key, creating it if
	// absent.
	Append(key string, entries [][]byte) error
	// SetMeta stores m at key, overwriting any prior value.
	SetMeta(key string, m Meta) (Meta, error)
	// GetMeta retrieves the meta record at key, if present.
	GetMeta(key string) (m Meta, found bool, err error)
	// Expire sets a TTL on key.
	Expire(key string, ttl time.Duration) error
}

// TTL is the fixed cache lifetime spec.md §3 and §4.6 specify.
const TTL = 24 * time.Hour

func marshalMeta(m Meta) ([]byte, error) {
	return json.Marshal(m)
}

func unmarshalMeta(buf []byte) (Meta, error) {
	var m Meta
	err := json.Unmarshal(buf, &m)
	return m, err
}
