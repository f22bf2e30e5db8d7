package cache

import (
	"context"
	"errors"
)

// Graph declares which entity types' cached data depend on writes to another
// entity type. Edges are static configuration: a write to the source prefix
// invalidates the dependents' keys under the same scope.
type Graph map[Prefix][]Prefix

// DefaultGraph is the dependency configuration for the synced entity types.
// Writing an event's data touches everything scoped to that event; writing
// teams reshapes the season-wide player and fixture views.
func DefaultGraph() Graph {
	return Graph{
		PrefixEvents: {PrefixFixtures, PrefixLive, PrefixPicks},
		PrefixTeams:  {PrefixPlayers, PrefixFixtures},
	}
}

// Dependents returns the entity types whose cached data must be invalidated
// when the source changes. The returned slice is a copy.
func (g Graph) Dependents(source Prefix) []Prefix {
	deps := g[source]
	return append([]Prefix(nil), deps...)
}

// Invalidator walks the dependency graph and removes the affected keys from
// the store. It never repopulates; the next read does.
type Invalidator struct {
	store  Store
	graph  Graph
	season string
}

// NewInvalidator builds an invalidator over the given store and graph for
// one season's key namespace.
func NewInvalidator(store Store, graph Graph, season string) *Invalidator {
	return &Invalidator{store: store, graph: graph, season: season}
}

// InvalidateScoped removes the dependents' keys under the given scope. The
// cascade is one level deep unless transitive is set, in which case it
// follows dependents' own edges (each prefix visited once).
func (i *Invalidator) InvalidateScoped(ctx context.Context, source Prefix, scope int64, transitive bool) error {
	var errs []error
	for _, dep := range i.collect(source, transitive) {
		// The scope's collection lives under one exact key; ScopedPattern
		// only covers keys nested below it.
		if err := i.invalidatePattern(ctx, ScopedKey(dep, i.season, scope)); err != nil {
			errs = append(errs, err)
		}
		if err := i.invalidatePattern(ctx, ScopedPattern(dep, i.season, scope)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InvalidateSeason removes every key of the dependents for the whole season,
// scoped keys included. Used when a season-wide collection is rewritten.
func (i *Invalidator) InvalidateSeason(ctx context.Context, source Prefix, transitive bool) error {
	var errs []error
	for _, dep := range i.collect(source, transitive) {
		if err := i.invalidatePattern(ctx, Key(dep, i.season)); err != nil {
			errs = append(errs, err)
		}
		if err := i.invalidatePattern(ctx, SeasonPattern(dep, i.season)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InvalidateScopedBatch processes each scope independently: one scope's cache
// failure never aborts the others. The returned map carries the per-scope
// outcome; scopes that succeeded are absent.
func (i *Invalidator) InvalidateScopedBatch(ctx context.Context, source Prefix, scopes []int64, transitive bool) map[int64]error {
	failures := make(map[int64]error)
	for _, scope := range scopes {
		if err := i.InvalidateScoped(ctx, source, scope, transitive); err != nil {
			failures[scope] = err
		}
	}
	return failures
}

func (i *Invalidator) collect(source Prefix, transitive bool) []Prefix {
	direct := i.graph.Dependents(source)
	if !transitive {
		return direct
	}

	seen := map[Prefix]bool{source: true}
	var out []Prefix
	queue := direct
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
		queue = append(queue, i.graph.Dependents(p)...)
	}
	return out
}

func (i *Invalidator) invalidatePattern(ctx context.Context, pattern string) error {
	keys, err := i.store.KeysMatching(ctx, pattern)
	if err != nil {
		return &CacheError{Op: "scan", Key: pattern, Err: err}
	}
	if len(keys) == 0 {
		return nil
	}
	if err := i.store.Invalidate(ctx, keys); err != nil {
		return &CacheError{Op: "invalidate", Key: pattern, Err: err}
	}
	return nil
}
