package syncer

import (
	"context"
	"errors"

	"github.com/goliatone/go-fpl-sync/cache"
	"github.com/goliatone/go-fpl-sync/domain"
	"github.com/goliatone/go-fpl-sync/pkg/logger"
	"github.com/goliatone/go-fpl-sync/repository"
)

// Read-through accessors. A cache hit serves the materialized collection; a
// miss, a corrupt entry, or a cache failure falls through to the repository
// and repopulates the key best-effort. A broken cache never raises an error
// to the caller: the result must equal what the store alone would return.

// Teams returns the season's clubs, ordered by id ascending.
func (s *Service) Teams(ctx context.Context) ([]domain.Team, error) {
	return readCollection(ctx, s, "teams",
		cache.Key(cache.PrefixTeams, s.season),
		s.teams.FindAll,
		func(t domain.Team) string { return cache.SubKey(int64(t.ID)) })
}

// Players returns the season's elements, ordered by id ascending.
func (s *Service) Players(ctx context.Context) ([]domain.Player, error) {
	return readCollection(ctx, s, "players",
		cache.Key(cache.PrefixPlayers, s.season),
		s.players.FindAll,
		func(p domain.Player) string { return cache.SubKey(int64(p.ID)) })
}

// Events returns the season's gameweeks, ordered by id ascending.
func (s *Service) Events(ctx context.Context) ([]domain.Event, error) {
	return readCollection(ctx, s, "events",
		cache.Key(cache.PrefixEvents, s.season),
		s.events.FindAll,
		func(e domain.Event) string { return cache.SubKey(int64(e.ID)) })
}

// Fixtures returns one event's fixtures, ordered by id ascending.
func (s *Service) Fixtures(ctx context.Context, eventID int64) ([]domain.Fixture, error) {
	return readCollection(ctx, s, "fixtures",
		cache.ScopedKey(cache.PrefixFixtures, s.season, eventID),
		func(ctx context.Context) ([]domain.Fixture, error) {
			return s.fixtures.FindByScope(ctx, eventID)
		},
		func(f domain.Fixture) string { return cache.SubKey(int64(f.ID)) })
}

// Live returns one event's live stat lines, ordered by element id ascending.
func (s *Service) Live(ctx context.Context, eventID int64) ([]domain.Live, error) {
	return readCollection(ctx, s, "live",
		cache.ScopedKey(cache.PrefixLive, s.season, eventID),
		func(ctx context.Context) ([]domain.Live, error) {
			return s.live.FindByScope(ctx, eventID)
		},
		func(l domain.Live) string { return cache.SubKey(int64(l.PlayerID)) })
}

// Picks returns one entry's picks for one event, ordered by squad position.
// The cached collection holds every synced entry for the event; the entry's
// slice is carved out by sub-key prefix.
func (s *Service) Picks(ctx context.Context, entryID, eventID int64) ([]domain.Pick, error) {
	all, err := readCollection(ctx, s, "picks",
		cache.ScopedKey(cache.PrefixPicks, s.season, eventID),
		func(ctx context.Context) ([]domain.Pick, error) {
			return s.picks.FindByScope(ctx, eventID)
		},
		func(p domain.Pick) string { return cache.SubKey2(int64(p.EntryID), int64(p.Position)) })
	if err != nil {
		return nil, err
	}

	out := make([]domain.Pick, 0, 15)
	for _, p := range all {
		if p.EntryID == domain.EntryID(entryID) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Team returns one club by id. Absence is a NOT_FOUND service error.
func (s *Service) Team(ctx context.Context, id int64) (domain.Team, error) {
	rec, err := s.teams.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, translateRead("teams", err)
	}
	return rec, nil
}

// Player returns one element by id. Absence is a NOT_FOUND service error.
func (s *Service) Player(ctx context.Context, id int64) (domain.Player, error) {
	rec, err := s.players.FindByID(ctx, id)
	if err != nil {
		return domain.Player{}, translateRead("players", err)
	}
	return rec, nil
}

func readCollection[D any](
	ctx context.Context,
	s *Service,
	entity string,
	key string,
	load func(ctx context.Context) ([]D, error),
	subKey func(D) string,
) ([]D, error) {
	items, hit, err := cache.GetCollection[D](ctx, s.store, key)
	if err != nil {
		// Recoverable by design: log and fall through to the store.
		s.log.Warn(ctx, "cache read failed, falling back to store",
			logger.String("key", key),
			logger.Err(err))
	}
	if err == nil && hit {
		return cache.SortedValues(items), nil
	}

	recs, err := load(ctx)
	if err != nil {
		return nil, translateRead(entity, err)
	}

	repopulated := make(map[string]D, len(recs))
	for _, rec := range recs {
		repopulated[subKey(rec)] = rec
	}
	if err := cache.SetCollection(ctx, s.store, key, repopulated); err != nil {
		s.log.Warn(ctx, "cache repopulation failed",
			logger.String("key", key),
			logger.Err(err))
	}

	return recs, nil
}

// translateRead maps repository errors on read paths into the outer
// ServiceError kind, same lattice as the workflow translators.
func translateRead(entity string, err error) *ServiceError {
	var notFound *repository.NotFoundError
	if errors.As(err, &notFound) {
		return fromNotFound("", entity, notFound)
	}
	var persErr *repository.PersistenceError
	if errors.As(err, &persErr) {
		return fromPersistence("", entity, persErr)
	}
	return &ServiceError{Kind: KindPersistence, Entity: entity, Cause: err}
}
