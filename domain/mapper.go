package domain

import (
	"strconv"
	"time"

	"github.com/goliatone/go-fpl-sync/schema"
)

// Mappers are pure functions from a schema-validated payload to a domain
// record. They perform no I/O. Nullable upstream fields become explicit
// sentinels here: a nil aggregate maps to zero, never to a null that the
// domain layer would have to carry around.

// MapTeam converts an upstream team into its domain record.
func MapTeam(in schema.Team) (Team, error) {
	return Team{
		ID:        TeamID(in.ID),
		Code:      in.Code,
		Name:      in.Name,
		ShortName: in.ShortName,
		Strength:  in.Strength,
		Played:    in.Played,
		Win:       in.Win,
		Draw:      in.Draw,
		Loss:      in.Loss,
		Points:    in.Points,
		Position:  in.Position,
	}, nil
}

// MapPlayer converts an upstream element into its domain record. The upstream
// sends selection share as a decimal string; an empty value maps to zero.
func MapPlayer(in schema.Player) (Player, error) {
	selected := 0.0
	if in.SelectedByPercent != "" {
		parsed, err := strconv.ParseFloat(in.SelectedByPercent, 64)
		if err != nil {
			return Player{}, mappingErr("player", "element %d: unparsable selected_by_percent %q", in.ID, in.SelectedByPercent)
		}
		selected = parsed
	}

	return Player{
		ID:           PlayerID(in.ID),
		Code:         in.Code,
		FirstName:    in.FirstName,
		SecondName:   in.SecondName,
		WebName:      in.WebName,
		TeamID:       TeamID(in.Team),
		PositionType: in.ElementType,
		NowCost:      in.NowCost,
		TotalPoints:  in.TotalPoints,
		SelectedBy:   selected,
	}, nil
}

// MapEvent converts an upstream gameweek into its domain record. The event id
// must lie within the competition's round range and the deadline must parse.
func MapEvent(in schema.Event) (Event, error) {
	id := EventID(in.ID)
	if !id.Valid() {
		return Event{}, mappingErr("event", "id %d outside round range %d..%d", in.ID, FirstEvent, LastEvent)
	}

	deadline, err := time.Parse(time.RFC3339, in.DeadlineTime)
	if err != nil {
		return Event{}, mappingErr("event", "event %d: unparsable deadline_time %q", in.ID, in.DeadlineTime)
	}

	return Event{
		ID:            id,
		Name:          in.Name,
		DeadlineTime:  deadline,
		Finished:      in.Finished,
		DataChecked:   in.DataChecked,
		AverageScore:  in.AverageEntryScore,
		HighestScore:  intOrZero(in.HighestScore),
		MostSelected:  PlayerID(int64OrZero(in.MostSelected)),
		MostCaptained: PlayerID(int64OrZero(in.MostCaptained)),
	}, nil
}

// MapFixture converts an upstream fixture into its domain record. A fixture
// without an event assignment, or assigned outside the round range, cannot be
// represented.
func MapFixture(in schema.Fixture) (Fixture, error) {
	if in.Event == nil {
		return Fixture{}, mappingErr("fixture", "fixture %d has no event assignment", in.ID)
	}
	eventID := EventID(*in.Event)
	if !eventID.Valid() {
		return Fixture{}, mappingErr("fixture", "fixture %d: event %d outside round range", in.ID, *in.Event)
	}

	var kickoff time.Time
	if in.KickoffTime != nil {
		parsed, err := time.Parse(time.RFC3339, *in.KickoffTime)
		if err != nil {
			return Fixture{}, mappingErr("fixture", "fixture %d: unparsable kickoff_time %q", in.ID, *in.KickoffTime)
		}
		kickoff = parsed
	}

	return Fixture{
		ID:          FixtureID(in.ID),
		Code:        in.Code,
		EventID:     eventID,
		KickoffTime: kickoff,
		HomeTeam:    TeamID(in.TeamH),
		AwayTeam:    TeamID(in.TeamA),
		HomeScore:   intOrZero(in.TeamHScore),
		AwayScore:   intOrZero(in.TeamAScore),
		Started:     in.Started,
		Finished:    in.Finished,
	}, nil
}

// MapLive converts one live stat line, scoped to the event it was fetched for.
func MapLive(eventID EventID, in schema.LiveElement) (Live, error) {
	if !eventID.Valid() {
		return Live{}, mappingErr("live", "event %d outside round range", eventID)
	}

	return Live{
		EventID:     eventID,
		PlayerID:    PlayerID(in.ID),
		Minutes:     in.Stats.Minutes,
		GoalsScored: in.Stats.GoalsScored,
		Assists:     in.Stats.Assists,
		Bonus:       in.Stats.Bonus,
		TotalPoints: in.Stats.TotalPoints,
	}, nil
}

// MapPick converts one squad slot, scoped to the entry and event it was
// fetched for.
func MapPick(entryID EntryID, eventID EventID, in schema.Pick) (Pick, error) {
	if entryID <= 0 {
		return Pick{}, mappingErr("pick", "entry id %d must be positive", entryID)
	}
	if !eventID.Valid() {
		return Pick{}, mappingErr("pick", "event %d outside round range", eventID)
	}

	return Pick{
		EntryID:       entryID,
		EventID:       eventID,
		Position:      in.Position,
		PlayerID:      PlayerID(in.Element),
		Multiplier:    in.Multiplier,
		IsCaptain:     in.IsCaptain,
		IsViceCaptain: in.IsViceCaptain,
	}, nil
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func int64OrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
