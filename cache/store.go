package cache

import (
	"context"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// Store is the key-value contract the pipeline caches against. The cache is
// a derived, disposable view of the repository: it may always be dropped and
// rebuilt from the store, never the other way around.
type Store interface {
	// Get returns the payload under key. A missing key is (nil, false, nil),
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set replaces the payload under key.
	Set(ctx context.Context, key string, payload []byte) error

	// KeysMatching returns the keys matching pattern (see Match).
	KeysMatching(ctx context.Context, pattern string) ([]string, error)

	// Invalidate removes the given keys. It does not repopulate; the next
	// read is expected to.
	Invalidate(ctx context.Context, keys []string) error
}

// GetCollection reads and decodes the collection stored under key. A corrupt
// or unexpectedly shaped payload is treated as a miss, never as a fatal
// error: the caller falls through to the repository.
func GetCollection[T any](ctx context.Context, s Store, key string) (map[string]T, bool, error) {
	payload, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, false, &CacheError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return nil, false, nil
	}

	var items map[string]T
	if err := msgpack.Unmarshal(payload, &items); err != nil {
		// Corrupt entry: report a miss so reads fall back to the store.
		return nil, false, nil
	}
	return items, true, nil
}

// SetCollection replaces the entire collection under key in one write. The
// whole collection lives under a single key, so the replacement is atomic
// and stale sub-entries for upstream-deleted records cannot survive it.
func SetCollection[T any](ctx context.Context, s Store, key string, items map[string]T) error {
	payload, err := msgpack.Marshal(items)
	if err != nil {
		return &CacheError{Op: "encode", Key: key, Err: err}
	}
	if err := s.Set(ctx, key, payload); err != nil {
		return &CacheError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// SortedValues returns the collection's values ordered by sub-key. Sub-keys
// are zero-padded (see SubKey), so this is primary-key ascending order.
func SortedValues[T any](items map[string]T) []T {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, items[k])
	}
	return out
}
