package syncer

import (
	"context"
	"testing"

	"github.com/goliatone/go-fpl-sync/pkg/testsupport"
	"github.com/goliatone/go-fpl-sync/schema"
)

// Full bootstrap pass over a captured upstream document: teams, players and
// events synced from the same snapshot, then read back through the cache.
func TestSyncBootstrapSnapshot(t *testing.T) {
	ctx := context.Background()

	var doc schema.BootstrapDocument
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("bootstrap.json"), &doc)

	client := &fakeClient{bootstrap: &doc}
	svc, _ := newTestService(t, client)

	teamsRes, err := svc.SyncTeams(ctx)
	if err != nil {
		t.Fatalf("teams sync failed: %v", err)
	}
	playersRes, err := svc.SyncPlayers(ctx)
	if err != nil {
		t.Fatalf("players sync failed: %v", err)
	}
	eventsRes, err := svc.SyncEvents(ctx)
	if err != nil {
		t.Fatalf("events sync failed: %v", err)
	}

	if teamsRes.Synced != 2 || playersRes.Synced != 3 || eventsRes.Synced != 2 {
		t.Errorf("expected 2/3/2 synced, got %d/%d/%d",
			teamsRes.Synced, playersRes.Synced, eventsRes.Synced)
	}
	if teamsRes.Skipped != 0 || playersRes.Skipped != 0 || eventsRes.Skipped != 0 {
		t.Errorf("expected nothing skipped, got %d/%d/%d",
			teamsRes.Skipped, playersRes.Skipped, eventsRes.Skipped)
	}

	players, err := svc.Players(ctx)
	if err != nil {
		t.Fatalf("players read failed: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(players))
	}
	// Id-ascending, so the Villa keeper comes first.
	if players[0].WebName != "Martinez" || players[0].TeamID != 2 {
		t.Errorf("expected Martinez of team 2 first, got %q of team %d",
			players[0].WebName, players[0].TeamID)
	}
	if players[1].SelectedBy != 48.2 {
		t.Errorf("expected Saka at 48.2 percent, got %v", players[1].SelectedBy)
	}

	events, err := svc.Events(ctx)
	if err != nil {
		t.Fatalf("events read failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if !events[0].Finished || events[0].MostCaptained != 401 {
		t.Errorf("expected finished round with most_captained 401, got %+v", events[0])
	}
	// The unfinished round's null aggregates arrive as zero sentinels.
	if events[1].Finished || events[1].HighestScore != 0 || events[1].MostSelected != 0 {
		t.Errorf("expected zero aggregates for the open round, got %+v", events[1])
	}
}
