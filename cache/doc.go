// Package cache defines the caching contract for the sync pipeline.
//
// # Overview
//
// The package exports:
//
//   - Store: the key-value contract (get, atomic collection replace, key
//     scanning, invalidation) implemented by internal/cacheinfra
//   - Key builders for the {prefix}::{season}[::{scopeId}] namespace
//   - Generic msgpack collection codecs (GetCollection / SetCollection)
//   - Graph and Invalidator: the static dependency edges between entity
//     types and the cascade that removes dependent keys after a write
//
// # Consistency model
//
// The cache is a derived, disposable view of the relational store. An entry,
// if present, reflects the store as of the last successful write that
// touched its key; staleness is bounded by the write/invalidate pairing in
// the sync workflow, with the backend TTL as a safety net. A corrupt cached
// payload decodes as a miss, never as an error: a broken cache must not
// block reads.
//
// # Key namespace
//
// Season-wide collections live under {prefix}::{season}; per-scope
// collections under {prefix}::{season}::{scopeId}. A whole collection is one
// value under one key, so SetCollection's replacement is a single atomic Set
// and stale sub-entries for upstream-deleted records cannot survive a
// repopulation.
package cache
