package cacheinfra

import (
	"context"

	"github.com/viccon/sturdyc"

	"github.com/goliatone/go-fpl-sync/cache"
)

// Interface assertion so a contract change surfaces at compile time.
var _ cache.Store = (*sturdycStore)(nil)

// sturdycStore implements cache.Store over a sturdyc client holding encoded
// collection payloads.
type sturdycStore struct {
	client *sturdyc.Client[[]byte]
}

// NewStore creates a cache.Store backed by sturdyc with the provided
// configuration.
func NewStore(cfg Config) (cache.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[[]byte](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.options()...,
	)

	return &sturdycStore{client: client}, nil
}

func (s *sturdycStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, ok := s.client.Get(key)
	if !ok {
		return nil, false, nil
	}
	return payload, true, nil
}

func (s *sturdycStore) Set(ctx context.Context, key string, payload []byte) error {
	s.client.Set(key, payload)
	return nil
}

func (s *sturdycStore) KeysMatching(ctx context.Context, pattern string) ([]string, error) {
	var matched []string
	for _, key := range s.client.ScanKeys() {
		if cache.Match(pattern, key) {
			matched = append(matched, key)
		}
	}
	return matched, nil
}

func (s *sturdycStore) Invalidate(ctx context.Context, keys []string) error {
	for _, key := range keys {
		s.client.Delete(key)
	}
	return nil
}
