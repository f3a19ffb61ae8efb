package cache

import "time"

// Noop is the default cache: every read misses, every write silently
// succeeds without storing anything. Used when no external KV store is
// configured, matching util.py's get_redis_client() returning None.
type Noop struct{}

var _ Cache = Noop{}

func (Noop) GetRange(key string, start, count int) ([][]byte, bool, error) {
	return nil, false, nil
}

func (Noop) Append(key string, entries [][]byte) error {
	return nil
}

func (Noop) SetMeta(key string, m Meta) (Meta, error) {
	return m, nil
}

func (Noop) GetMeta(key string) (Meta, bool, error) {
	return Meta{}, false, nil
}

func (Noop) Expire(key string, ttl time.Duration) error {
	return nil
}
