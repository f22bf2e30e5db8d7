// Package syncer is the sync workflow orchestrator: one entry point per
// entity type, each running fetch, validate/map, persist, and cache
// invalidation/repopulation strictly in sequence, reporting a typed result
// either way. Callers (HTTP handlers, schedulers) stay thin adapters.
package syncer

import (
	"context"
	"errors"

	"github.com/goccy/go-json"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-fpl-sync/cache"
	"github.com/goliatone/go-fpl-sync/domain"
	"github.com/goliatone/go-fpl-sync/pkg/logger"
	"github.com/goliatone/go-fpl-sync/repository"
	"github.com/goliatone/go-fpl-sync/schema"
)

// APIClient is the external API surface the orchestrator fetches from.
// Satisfied by *fplapi.Client; tests substitute fakes.
type APIClient interface {
	Bootstrap(ctx context.Context) (*schema.BootstrapDocument, error)
	Fixtures(ctx context.Context, eventID int64) ([]json.RawMessage, error)
	Live(ctx context.Context, eventID int64) ([]json.RawMessage, error)
	Picks(ctx context.Context, entryID, eventID int64) ([]json.RawMessage, error)
}

// Options configures a Service. Every collaborator is injected; the service
// holds no globals.
type Options struct {
	Client APIClient
	DB     *bun.DB
	Store  cache.Store
	Graph  cache.Graph
	Season string
	Logger logger.Logger
}

// Service coordinates the sync workflows and the read-through accessors for
// every entity type.
type Service struct {
	client   APIClient
	store    cache.Store
	inv      *cache.Invalidator
	season   string
	log      logger.Logger
	inflight *xsync.MapOf[string, struct{}]

	teams    *repository.Repository[domain.Team]
	players  *repository.Repository[domain.Player]
	events   *repository.Repository[domain.Event]
	fixtures *repository.Repository[domain.Fixture]
	live     *repository.Repository[domain.Live]
	picks    *repository.Repository[domain.Pick]
}

// New wires a Service from its collaborators.
func New(opts Options) (*Service, error) {
	if opts.Client == nil {
		return nil, errors.New("syncer: Client must not be nil")
	}
	if opts.DB == nil {
		return nil, errors.New("syncer: DB must not be nil")
	}
	if opts.Store == nil {
		return nil, errors.New("syncer: Store must not be nil")
	}
	if opts.Season == "" {
		return nil, errors.New("syncer: Season must not be empty")
	}
	if opts.Graph == nil {
		opts.Graph = cache.DefaultGraph()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	teams, err := repository.New(opts.DB, repository.TeamHandlers())
	if err != nil {
		return nil, err
	}
	players, err := repository.New(opts.DB, repository.PlayerHandlers())
	if err != nil {
		return nil, err
	}
	events, err := repository.New(opts.DB, repository.EventHandlers())
	if err != nil {
		return nil, err
	}
	fixtures, err := repository.New(opts.DB, repository.FixtureHandlers())
	if err != nil {
		return nil, err
	}
	live, err := repository.New(opts.DB, repository.LiveHandlers())
	if err != nil {
		return nil, err
	}
	picks, err := repository.New(opts.DB, repository.PickHandlers())
	if err != nil {
		return nil, err
	}

	return &Service{
		client:   opts.Client,
		store:    opts.Store,
		inv:      cache.NewInvalidator(opts.Store, opts.Graph, opts.Season),
		season:   opts.Season,
		log:      opts.Logger.Named("syncer"),
		inflight: xsync.NewMapOf[string, struct{}](),
		teams:    teams,
		players:  players,
		events:   events,
		fixtures: fixtures,
		live:     live,
		picks:    picks,
	}, nil
}

// SyncTeams synchronizes the season's clubs from the bootstrap snapshot.
func (s *Service) SyncTeams(ctx context.Context) (Result, error) {
	return runSync(ctx, s, syncSpec[schema.Team, domain.Team]{
		entity: "teams",
		prefix: cache.PrefixTeams,
		fetch: func(ctx context.Context) ([]json.RawMessage, error) {
			doc, err := s.client.Bootstrap(ctx)
			if err != nil {
				return nil, err
			}
			return doc.Teams, nil
		},
		mapRecord: domain.MapTeam,
		subKey:    func(t domain.Team) string { return cache.SubKey(int64(t.ID)) },
		repo:      s.teams,
	})
}

// SyncPlayers synchronizes the season's elements from the bootstrap snapshot.
func (s *Service) SyncPlayers(ctx context.Context) (Result, error) {
	return runSync(ctx, s, syncSpec[schema.Player, domain.Player]{
		entity: "players",
		prefix: cache.PrefixPlayers,
		fetch: func(ctx context.Context) ([]json.RawMessage, error) {
			doc, err := s.client.Bootstrap(ctx)
			if err != nil {
				return nil, err
			}
			return doc.Elements, nil
		},
		mapRecord: domain.MapPlayer,
		subKey:    func(p domain.Player) string { return cache.SubKey(int64(p.ID)) },
		repo:      s.players,
	})
}

// SyncEvents synchronizes the season's gameweeks from the bootstrap snapshot.
func (s *Service) SyncEvents(ctx context.Context) (Result, error) {
	return runSync(ctx, s, syncSpec[schema.Event, domain.Event]{
		entity: "events",
		prefix: cache.PrefixEvents,
		fetch: func(ctx context.Context) ([]json.RawMessage, error) {
			doc, err := s.client.Bootstrap(ctx)
			if err != nil {
				return nil, err
			}
			return doc.Events, nil
		},
		mapRecord: domain.MapEvent,
		subKey:    func(e domain.Event) string { return cache.SubKey(int64(e.ID)) },
		repo:      s.events,
	})
}

// SyncFixtures synchronizes one event's fixtures.
func (s *Service) SyncFixtures(ctx context.Context, eventID int64) (Result, error) {
	return runSync(ctx, s, syncSpec[schema.Fixture, domain.Fixture]{
		entity: "fixtures",
		prefix: cache.PrefixFixtures,
		scope:  &eventID,
		fetch: func(ctx context.Context) ([]json.RawMessage, error) {
			return s.client.Fixtures(ctx, eventID)
		},
		mapRecord: domain.MapFixture,
		subKey:    func(f domain.Fixture) string { return cache.SubKey(int64(f.ID)) },
		repo:      s.fixtures,
	})
}

// SyncLive synchronizes one event's live stat lines.
func (s *Service) SyncLive(ctx context.Context, eventID int64) (Result, error) {
	return runSync(ctx, s, syncSpec[schema.LiveElement, domain.Live]{
		entity: "live",
		prefix: cache.PrefixLive,
		scope:  &eventID,
		fetch: func(ctx context.Context) ([]json.RawMessage, error) {
			return s.client.Live(ctx, eventID)
		},
		mapRecord: func(in schema.LiveElement) (domain.Live, error) {
			return domain.MapLive(domain.EventID(eventID), in)
		},
		subKey: func(l domain.Live) string { return cache.SubKey(int64(l.PlayerID)) },
		repo:   s.live,
	})
}

// SyncLiveBatch synchronizes live stats for several events. Each event is
// processed independently: one event's failure is reported in its outcome
// and never aborts the rest.
func (s *Service) SyncLiveBatch(ctx context.Context, eventIDs []int64) []ScopeOutcome {
	outcomes := make([]ScopeOutcome, 0, len(eventIDs))
	for _, id := range eventIDs {
		res, err := s.SyncLive(ctx, id)
		outcomes = append(outcomes, ScopeOutcome{Scope: id, Result: res, Err: err})
	}
	return outcomes
}

// SyncPicks synchronizes one entry's picks for one event.
func (s *Service) SyncPicks(ctx context.Context, entryID, eventID int64) (Result, error) {
	return runSync(ctx, s, syncSpec[schema.Pick, domain.Pick]{
		entity: "picks",
		prefix: cache.PrefixPicks,
		scope:  &eventID,
		fetch: func(ctx context.Context) ([]json.RawMessage, error) {
			return s.client.Picks(ctx, entryID, eventID)
		},
		mapRecord: func(in schema.Pick) (domain.Pick, error) {
			return domain.MapPick(domain.EntryID(entryID), domain.EventID(eventID), in)
		},
		subKey: func(p domain.Pick) string {
			return cache.SubKey2(int64(p.EntryID), int64(p.Position))
		},
		repo: s.picks,
	})
}

// RebuildFixtures purges one event's fixtures and re-syncs them wholesale.
// The destructive path for when upstream has rewritten history.
func (s *Service) RebuildFixtures(ctx context.Context, eventID int64) (Result, error) {
	if err := s.fixtures.DeleteByScope(ctx, eventID); err != nil {
		wf := newWorkflow()
		var persErr *repository.PersistenceError
		if errors.As(err, &persErr) {
			return Result{WorkflowID: wf.ID, Entity: "fixtures", Scope: eventID}, fromPersistence(wf.ID, "fixtures", persErr)
		}
		return Result{WorkflowID: wf.ID, Entity: "fixtures", Scope: eventID}, fromPersistence(wf.ID, "fixtures", &repository.PersistenceError{Op: "fixtures.DeleteByScope", Err: err})
	}
	return s.SyncFixtures(ctx, eventID)
}
