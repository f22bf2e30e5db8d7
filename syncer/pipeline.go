package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-fpl-sync/cache"
	"github.com/goliatone/go-fpl-sync/domain"
	"github.com/goliatone/go-fpl-sync/internal/fplapi"
	"github.com/goliatone/go-fpl-sync/pkg/logger"
	"github.com/goliatone/go-fpl-sync/repository"
	"github.com/goliatone/go-fpl-sync/schema"
)

// syncSpec parameterizes one workflow run: how to fetch, validate, map and
// persist one entity type, and which cache namespace it owns. The per-entity
// sync methods on Service are thin constructions of this value; the generic
// runner below is the pipeline implemented once.
type syncSpec[E schema.Payload, D any] struct {
	entity    string
	prefix    cache.Prefix
	scope     *int64
	fetch     func(ctx context.Context) ([]json.RawMessage, error)
	mapRecord func(E) (D, error)
	subKey    func(D) string
	repo      *repository.Repository[D]
}

func (sp syncSpec[E, D]) cacheKey(season string) string {
	if sp.scope != nil {
		return cache.ScopedKey(sp.prefix, season, *sp.scope)
	}
	return cache.Key(sp.prefix, season)
}

func (sp syncSpec[E, D]) guardKey() string {
	if sp.scope != nil {
		return fmt.Sprintf("%s/%d", sp.entity, *sp.scope)
	}
	return sp.entity
}

// runSync executes one workflow: fetch, validate/map, persist, repopulate
// the entity's own cache key, cascade-invalidate dependents. Steps run
// strictly in sequence; any step's failure becomes the terminal outcome,
// translated into a ServiceError with the original cause preserved.
func runSync[E schema.Payload, D any](ctx context.Context, s *Service, sp syncSpec[E, D]) (Result, error) {
	wf := newWorkflow()
	res := Result{WorkflowID: wf.ID, Entity: sp.entity}
	if sp.scope != nil {
		res.Scope = *sp.scope
	}

	// Concurrent syncs of the identical entity+scope are a caller error;
	// rejecting them here keeps one workflow's persist/invalidate pairing
	// from interleaving with another's.
	guard := sp.guardKey()
	if _, inFlight := s.inflight.LoadOrStore(guard, struct{}{}); inFlight {
		return res, fromDomain(wf.ID, sp.entity, &DomainError{
			Entity: sp.entity,
			Reason: "sync already in flight for this scope",
		})
	}
	defer s.inflight.Delete(guard)

	s.log.Debug(ctx, "sync started",
		logger.String("workflow", wf.ID),
		logger.String("entity", sp.entity),
		logger.Int64("scope", res.Scope))

	raw, err := sp.fetch(ctx)
	if err != nil {
		var apiErr *fplapi.APIError
		if errors.As(err, &apiErr) {
			return res, fromAPI(wf.ID, sp.entity, apiErr)
		}
		return res, fromAPI(wf.ID, sp.entity, &fplapi.APIError{Endpoint: sp.entity, Err: err})
	}
	res.Fetched = len(raw)

	// Validation is partial-success: a malformed record is reported and
	// excluded, never fatal for the batch.
	batch := schema.DecodeBatch[E](raw)
	res.Skipped = len(batch.Violations)
	for _, v := range batch.Violations {
		s.log.Warn(ctx, "record rejected by validation",
			logger.String("workflow", wf.ID),
			logger.String("entity", sp.entity),
			logger.String("violation", v.String()))
	}

	// A batch with survivors is partial success. A non-empty batch where
	// every record is rejected means the upstream schema drifted; that is
	// fatal, and the violations travel with the error.
	if res.Fetched > 0 && len(batch.Valid) == 0 {
		return res, fromValidation(wf.ID, sp.entity, &schema.ValidationError{
			Entity:     sp.entity,
			Violations: batch.Violations,
		})
	}

	mapped := make([]D, 0, len(batch.Valid))
	for _, item := range batch.Valid {
		rec, err := sp.mapRecord(item)
		if err != nil {
			var mapErr *domain.MappingError
			if errors.As(err, &mapErr) {
				return res, fromMapping(wf.ID, sp.entity, mapErr)
			}
			return res, fromMapping(wf.ID, sp.entity, &domain.MappingError{Entity: sp.entity, Reason: err.Error()})
		}
		mapped = append(mapped, rec)
	}

	if len(mapped) == 0 {
		// Upstream returned an empty batch; leave store and cache untouched.
		res.Duration = time.Since(wf.StartedAt)
		s.log.Info(ctx, "sync completed with no records",
			logger.String("workflow", wf.ID),
			logger.String("entity", sp.entity),
			logger.Int("skipped", res.Skipped))
		return res, nil
	}

	persisted, err := sp.repo.SaveBatch(ctx, mapped)
	if err != nil {
		var persErr *repository.PersistenceError
		if errors.As(err, &persErr) {
			return res, fromPersistence(wf.ID, sp.entity, persErr)
		}
		return res, fromPersistence(wf.ID, sp.entity, &repository.PersistenceError{Op: sp.entity + ".SaveBatch", Err: err})
	}
	res.Synced = len(persisted)

	// Write-through: replace the entity's own collection key, then cascade
	// invalidation to dependents. A failed repopulation degrades to an
	// invalidation of the same key so readers fall back to the store.
	key := sp.cacheKey(s.season)
	items := make(map[string]D, len(persisted))
	for _, rec := range persisted {
		items[sp.subKey(rec)] = rec
	}
	if err := cache.SetCollection(ctx, s.store, key, items); err != nil {
		s.log.Warn(ctx, "cache repopulation failed, invalidating instead",
			logger.String("workflow", wf.ID),
			logger.String("key", key),
			logger.Err(err))
		if ierr := s.store.Invalidate(ctx, []string{key}); ierr != nil {
			return res, fromCache(wf.ID, sp.entity, &cache.CacheError{Op: "invalidate", Key: key, Err: ierr})
		}
	}

	if err := s.cascade(ctx, sp.prefix, sp.scope); err != nil {
		var cacheErr *cache.CacheError
		if errors.As(err, &cacheErr) {
			return res, fromCache(wf.ID, sp.entity, cacheErr)
		}
		return res, fromCache(wf.ID, sp.entity, &cache.CacheError{Op: "cascade", Key: string(sp.prefix), Err: err})
	}

	res.Duration = time.Since(wf.StartedAt)
	s.log.Info(ctx, "sync completed",
		logger.String("workflow", wf.ID),
		logger.String("entity", sp.entity),
		logger.Int64("scope", res.Scope),
		logger.Int("fetched", res.Fetched),
		logger.Int("skipped", res.Skipped),
		logger.Int("synced", res.Synced),
		logger.Duration("duration", res.Duration))
	return res, nil
}

func (s *Service) cascade(ctx context.Context, prefix cache.Prefix, scope *int64) error {
	if scope != nil {
		return s.inv.InvalidateScoped(ctx, prefix, *scope, false)
	}
	return s.inv.InvalidateSeason(ctx, prefix, false)
}
