package cache

import (
	"fmt"
	"strconv"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// Badger backs Cache with an embedded github.com/dgraph-io/badger/v4 store,
// standing in for "a real KV client" per spec.md §9's design notes — this
// plays the role Redis plays in util.py's get_redis_client(), without
// inventing a fake client the corpus never demonstrates. Each fingerprint
// key's entry list is stored as <key>:<index> sub-keys plus a <key>:len
// counter, and its companion record as one JSON value at <key>:meta;
// every write is an entry carrying a TTL (badger.Entry.WithTTL), which gives
// both the 24h expiry spec.md §4.6 requires directly.
type Badger struct {
	db *badger.DB
}

var _ Cache = (*Badger)(nil)

// NewBadger wraps an already-open badger.DB. Callers own the DB's lifecycle
// (Open/Close); Badger never closes it.
func NewBadger(db *badger.DB) *Badger {
	return &Badger{db: db}
}

func entryKey(key string, index int) []byte {
	return []byte(fmt.Sprintf("%s:%d", key, index))
}

func lenKey(key string) []byte {
	return []byte(key + ":len")
}

func metaKey(key string) []byte {
	return []byte(key + ":meta")
}

func (b *Badger) listLen(txn *badger.Txn, key string) (int, bool, error) {
	item, err := txn.Get(lenKey(key))
	if err == badger.ErrKeyNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	var n int
	err = item.Value(func(v []byte) error {
		parsed, perr := strconv.Atoi(string(v))
		n = parsed
		return perr
	})
	return n, true, err
}

// GetRange reads up to count entries starting at index start. found reports
// whether the key has ever been written at all, not whether this particular
// range had entries.
func (b *Badger) GetRange(key string, start, count int) ([][]byte, bool, error) {
	var out [][]byte
	var found bool
	err := b.db.View(func(txn *badger.Txn) error {
		n, exists, err := b.listLen(txn, key)
		if err != nil {
			return err
		}
		found = exists
		if !exists {
			return nil
		}
		for i := start; i < n && i < start+count; i++ {
			item, err := txn.Get(entryKey(key, i))
			if err != nil {
				return err
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			out = append(out, val)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, found, nil
}

// Append adds entries to the end of key's list, creating it if absent, and
// refreshes its TTL.
func (b *Badger) Append(key string, entries [][]byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		n, _, err := b.listLen(txn, key)
		if err != nil {
			return err
		}
		for i, e := range entries {
			if err := txn.SetEntry(badger.NewEntry(entryKey(key, n+i), e).WithTTL(TTL)); err != nil {
				return err
			}
		}
		newLen := strconv.Itoa(n + len(entries))
		return txn.SetEntry(badger.NewEntry(lenKey(key), []byte(newLen)).WithTTL(TTL))
	})
}

// SetMeta overwrites the meta record at key with a fresh 24h TTL.
func (b *Badger) SetMeta(key string, m Meta) (Meta, error) {
	buf, err := marshalMeta(m)
	if err != nil {
		return Meta{}, err
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(metaKey(key), buf).WithTTL(TTL))
	})
	return m, err
}

// GetMeta reads the meta record at key, if present.
func (b *Badger) GetMeta(key string) (Meta, bool, error) {
	var m Meta
	var found bool
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(v []byte) error {
			parsed, perr := unmarshalMeta(v)
			m = parsed
			return perr
		})
	})
	if err != nil {
		return Meta{}, false, err
	}
	return m, found, nil
}

// Expire refreshes the TTL on key's list length entry, its meta entry, and
// every stored range entry. Badger has no bulk TTL-bump primitive, so this
// re-writes each entry's value back to itself with a new expiry.
func (b *Badger) Expire(key string, ttl time.Duration) error {
	return b.db.Update(func(txn *badger.Txn) error {
		n, exists, err := b.listLen(txn, key)
		if err != nil {
			return err
		}
		if !exists {
			return nil
		}
		if err := bumpTTL(txn, lenKey(key), ttl); err != nil {
			return err
		}
		if err := bumpTTL(txn, metaKey(key), ttl); err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		for i := 0; i < n; i++ {
			if err := bumpTTL(txn, entryKey(key, i), ttl); err != nil {
				return err
			}
		}
		return nil
	})
}

func bumpTTL(txn *badger.Txn, k []byte, ttl time.Duration) error {
	item, err := txn.Get(k)
	if err != nil {
		return err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return err
	}
	return txn.SetEntry(badger.NewEntry(k, val).WithTTL(ttl))
}
