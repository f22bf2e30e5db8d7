package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-fpl-sync/schema"
)

func TestMapTeam(t *testing.T) {
	in := schema.Team{
		ID: 1, Code: 3, Name: "Arsenal", ShortName: "ARS",
		Strength: 4, Played: 10, Win: 7, Draw: 2, Loss: 1, Points: 23, Position: 1,
	}

	got, err := MapTeam(in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != TeamID(1) {
		t.Errorf("expected id 1, got %d", got.ID)
	}
	if got.Name != "Arsenal" || got.ShortName != "ARS" {
		t.Errorf("expected Arsenal/ARS, got %q/%q", got.Name, got.ShortName)
	}
	if got.Points != 23 || got.Position != 1 {
		t.Errorf("expected 23 points at position 1, got %d at %d", got.Points, got.Position)
	}
}

func TestMapPlayer(t *testing.T) {
	tests := []struct {
		name         string
		selectedBy   string
		wantSelected float64
		wantErr      bool
	}{
		{name: "decimal string", selectedBy: "45.3", wantSelected: 45.3},
		{name: "integer string", selectedBy: "7", wantSelected: 7},
		{name: "empty maps to zero", selectedBy: "", wantSelected: 0},
		{name: "unparsable", selectedBy: "lots", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := schema.Player{
				ID: 100, Code: 5001, FirstName: "Bukayo", SecondName: "Saka",
				WebName: "Saka", Team: 1, ElementType: 3, NowCost: 102,
				TotalPoints: 56, SelectedByPercent: tt.selectedBy,
			}

			got, err := MapPlayer(in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected mapping error, got nil")
				}
				var mapErr *MappingError
				if !errors.As(err, &mapErr) {
					t.Fatalf("expected *MappingError, got %T", err)
				}
				if mapErr.Entity != "player" {
					t.Errorf("expected entity player, got %q", mapErr.Entity)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.SelectedBy != tt.wantSelected {
				t.Errorf("expected selected_by %v, got %v", tt.wantSelected, got.SelectedBy)
			}
			if got.TeamID != TeamID(1) || got.PositionType != 3 {
				t.Errorf("expected team 1 position 3, got %d and %d", got.TeamID, got.PositionType)
			}
		})
	}
}

func TestMapEvent(t *testing.T) {
	selected := int64(100)
	captained := int64(205)
	highest := 101

	in := schema.Event{
		ID: 5, Name: "Gameweek 5", DeadlineTime: "2025-09-20T10:00:00Z",
		Finished: true, DataChecked: true, AverageEntryScore: 54,
		HighestScore: &highest, MostSelected: &selected, MostCaptained: &captained,
	}

	got, err := MapEvent(in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != EventID(5) {
		t.Errorf("expected id 5, got %d", got.ID)
	}
	want := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	if !got.DeadlineTime.Equal(want) {
		t.Errorf("expected deadline %v, got %v", want, got.DeadlineTime)
	}
	if got.MostSelected != PlayerID(100) || got.MostCaptained != PlayerID(205) {
		t.Errorf("expected aggregates 100/205, got %d/%d", got.MostSelected, got.MostCaptained)
	}
}

func TestMapEventNullAggregatesBecomeZero(t *testing.T) {
	in := schema.Event{ID: 1, Name: "Gameweek 1", DeadlineTime: "2025-08-15T17:30:00Z"}

	got, err := MapEvent(in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.HighestScore != 0 || got.MostSelected != 0 || got.MostCaptained != 0 {
		t.Errorf("expected zero aggregates, got %d/%d/%d",
			got.HighestScore, got.MostSelected, got.MostCaptained)
	}
}

func TestMapEventRejectsOutOfRangeRounds(t *testing.T) {
	for _, id := range []int64{0, 39, 100} {
		in := schema.Event{ID: id, Name: "Gameweek X", DeadlineTime: "2025-08-15T17:30:00Z"}
		if _, err := MapEvent(in); err == nil {
			t.Errorf("expected error for event id %d, got nil", id)
		}
	}
}

func TestMapEventRejectsUnparsableDeadline(t *testing.T) {
	in := schema.Event{ID: 1, Name: "Gameweek 1", DeadlineTime: "next friday"}
	_, err := MapEvent(in)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "deadline_time") {
		t.Errorf("expected deadline_time in error, got %q", err.Error())
	}
}

func TestMapFixture(t *testing.T) {
	event := int64(5)
	kickoff := "2025-09-20T14:00:00Z"
	homeScore, awayScore := 2, 1

	in := schema.Fixture{
		ID: 42, Code: 2444, Event: &event, KickoffTime: &kickoff,
		TeamH: 1, TeamA: 2, TeamHScore: &homeScore, TeamAScore: &awayScore,
		Started: true, Finished: true,
	}

	got, err := MapFixture(in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.EventID != EventID(5) {
		t.Errorf("expected event 5, got %d", got.EventID)
	}
	if got.HomeScore != 2 || got.AwayScore != 1 {
		t.Errorf("expected score 2-1, got %d-%d", got.HomeScore, got.AwayScore)
	}
}

func TestMapFixtureUnscheduled(t *testing.T) {
	event := int64(5)
	in := schema.Fixture{ID: 42, Code: 2444, Event: &event, TeamH: 1, TeamA: 2}

	got, err := MapFixture(in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !got.KickoffTime.IsZero() {
		t.Errorf("expected zero kickoff time, got %v", got.KickoffTime)
	}
	if got.HomeScore != 0 || got.AwayScore != 0 || got.Started {
		t.Errorf("expected zero scores and not started, got %d-%d started=%v",
			got.HomeScore, got.AwayScore, got.Started)
	}
}

func TestMapFixtureRejectsMissingEvent(t *testing.T) {
	in := schema.Fixture{ID: 42, Code: 2444, TeamH: 1, TeamA: 2}
	if _, err := MapFixture(in); err == nil {
		t.Fatal("expected error for fixture without event, got nil")
	}

	outside := int64(50)
	in.Event = &outside
	if _, err := MapFixture(in); err == nil {
		t.Fatal("expected error for event outside round range, got nil")
	}
}

func TestMapLive(t *testing.T) {
	in := schema.LiveElement{
		ID:    100,
		Stats: schema.LiveStats{Minutes: 90, GoalsScored: 1, Assists: 2, Bonus: 3, TotalPoints: 15},
	}

	got, err := MapLive(EventID(5), in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.EventID != EventID(5) || got.PlayerID != PlayerID(100) {
		t.Errorf("expected key (5, 100), got (%d, %d)", got.EventID, got.PlayerID)
	}
	if got.TotalPoints != 15 {
		t.Errorf("expected 15 points, got %d", got.TotalPoints)
	}

	if _, err := MapLive(EventID(0), in); err == nil {
		t.Error("expected error for event 0, got nil")
	}
}

func TestMapPick(t *testing.T) {
	in := schema.Pick{Element: 100, Position: 1, Multiplier: 2, IsCaptain: true}

	got, err := MapPick(EntryID(777), EventID(5), in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.EntryID != EntryID(777) || got.EventID != EventID(5) || got.Position != 1 {
		t.Errorf("expected key (777, 5, 1), got (%d, %d, %d)",
			got.EntryID, got.EventID, got.Position)
	}
	if !got.IsCaptain || got.Multiplier != 2 {
		t.Errorf("expected captain with multiplier 2, got captain=%v multiplier=%d",
			got.IsCaptain, got.Multiplier)
	}

	if _, err := MapPick(EntryID(0), EventID(5), in); err == nil {
		t.Error("expected error for entry 0, got nil")
	}
	if _, err := MapPick(EntryID(777), EventID(39), in); err == nil {
		t.Error("expected error for event 39, got nil")
	}
}

func TestEventIDValid(t *testing.T) {
	tests := []struct {
		id   EventID
		want bool
	}{
		{0, false},
		{1, true},
		{20, true},
		{38, true},
		{39, false},
		{-1, false},
	}

	for _, tt := range tests {
		if got := tt.id.Valid(); got != tt.want {
			t.Errorf("EventID(%d).Valid() = %v, expected %v", tt.id, got, tt.want)
		}
	}
}
