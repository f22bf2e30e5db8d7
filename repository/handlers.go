package repository

import (
	"github.com/goliatone/go-fpl-sync/domain"
)

// Per-entity descriptors. The conflict policy is declared here, explicitly,
// rather than inferred from hand-written conflict targets: snapshot entities
// whose mutable aggregates are re-fetched (teams, players, events, live
// stats) overwrite on conflict; entities immutable once written (fixtures,
// picks) keep the original row.

// TeamHandlers describes the teams table.
func TeamHandlers() ModelHandlers[domain.Team] {
	return ModelHandlers[domain.Team]{
		Entity:          "team",
		IDColumn:        "id",
		ConflictColumns: []string{"id"},
		UpdateColumns: []string{
			"name", "short_name", "strength",
			"played", "win", "draw", "loss", "points", "position",
		},
		Policy: ConflictUpdate,
	}
}

// PlayerHandlers describes the players table.
func PlayerHandlers() ModelHandlers[domain.Player] {
	return ModelHandlers[domain.Player]{
		Entity:          "player",
		IDColumn:        "id",
		ConflictColumns: []string{"id"},
		UpdateColumns: []string{
			"first_name", "second_name", "web_name", "team_id",
			"position_type", "now_cost", "total_points", "selected_by",
		},
		Policy: ConflictUpdate,
	}
}

// EventHandlers describes the events table.
func EventHandlers() ModelHandlers[domain.Event] {
	return ModelHandlers[domain.Event]{
		Entity:          "event",
		IDColumn:        "id",
		ConflictColumns: []string{"id"},
		UpdateColumns: []string{
			"name", "deadline_time", "finished", "data_checked",
			"average_score", "highest_score", "most_selected", "most_captained",
		},
		Policy: ConflictUpdate,
	}
}

// FixtureHandlers describes the fixtures table. Fixtures are scoped to their
// event and never rewritten once stored.
func FixtureHandlers() ModelHandlers[domain.Fixture] {
	return ModelHandlers[domain.Fixture]{
		Entity:          "fixture",
		IDColumn:        "id",
		ConflictColumns: []string{"id"},
		ScopeColumn:     "event_id",
		Scope:           func(f domain.Fixture) int64 { return int64(f.EventID) },
		Policy:          ConflictIgnore,
	}
}

// LiveHandlers describes the live_stats table, keyed by (event, element) and
// overwritten on every re-sync while a round is in play.
func LiveHandlers() ModelHandlers[domain.Live] {
	return ModelHandlers[domain.Live]{
		Entity:          "live",
		IDColumn:        "element_id",
		ConflictColumns: []string{"event_id", "element_id"},
		UpdateColumns: []string{
			"minutes", "goals_scored", "assists", "bonus", "total_points",
		},
		ScopeColumn: "event_id",
		Scope:       func(l domain.Live) int64 { return int64(l.EventID) },
		Policy:      ConflictUpdate,
	}
}

// PickHandlers describes the picks table, keyed by (entry, event, position).
// Picks are frozen at the round deadline, so conflicts keep the original.
func PickHandlers() ModelHandlers[domain.Pick] {
	return ModelHandlers[domain.Pick]{
		Entity:          "pick",
		IDColumn:        "entry_id",
		ConflictColumns: []string{"entry_id", "event_id", "position"},
		ScopeColumn:     "event_id",
		Scope:           func(p domain.Pick) int64 { return int64(p.EventID) },
		Policy:          ConflictIgnore,
	}
}
