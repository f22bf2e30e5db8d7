// Package schema defines the external API payload shapes and validates them
// before anything downstream treats them as trustworthy. Unknown fields are
// tolerated so upstream additions never break a sync.
package schema

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Payload is implemented by every external record shape.
type Payload interface {
	Validate() error
}

// Team is the upstream shape of one club.
type Team struct {
	ID        int64  `json:"id"`
	Code      int64  `json:"code"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Strength  int    `json:"strength"`
	Played    int    `json:"played"`
	Win       int    `json:"win"`
	Draw      int    `json:"draw"`
	Loss      int    `json:"loss"`
	Points    int    `json:"points"`
	Position  int    `json:"position"`
}

func (t Team) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&t.Code, validation.Required, validation.Min(int64(1))),
		validation.Field(&t.Name, validation.Required, validation.Length(1, 128)),
		validation.Field(&t.ShortName, validation.Required, validation.Length(2, 8)),
		validation.Field(&t.Strength, validation.Min(0), validation.Max(5)),
		validation.Field(&t.Played, validation.Min(0)),
		validation.Field(&t.Points, validation.Min(0)),
	)
}

// Player is the upstream "element" shape. SelectedByPercent arrives as a
// decimal string, matching the wire format.
type Player struct {
	ID                int64  `json:"id"`
	Code              int64  `json:"code"`
	FirstName         string `json:"first_name"`
	SecondName        string `json:"second_name"`
	WebName           string `json:"web_name"`
	Team              int64  `json:"team"`
	ElementType       int    `json:"element_type"`
	NowCost           int    `json:"now_cost"`
	TotalPoints       int    `json:"total_points"`
	SelectedByPercent string `json:"selected_by_percent"`
}

func (p Player) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&p.Code, validation.Required, validation.Min(int64(1))),
		validation.Field(&p.WebName, validation.Required, validation.Length(1, 64)),
		validation.Field(&p.Team, validation.Required, validation.Min(int64(1))),
		validation.Field(&p.ElementType, validation.Required, validation.Min(1), validation.Max(4)),
		validation.Field(&p.NowCost, validation.Min(0)),
	)
}

// Event is the upstream gameweek shape. Aggregate fields are null until the
// upstream has computed them, hence the pointers.
type Event struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	DeadlineTime      string `json:"deadline_time"`
	Finished          bool   `json:"finished"`
	DataChecked       bool   `json:"data_checked"`
	AverageEntryScore int    `json:"average_entry_score"`
	HighestScore      *int   `json:"highest_score"`
	MostSelected      *int64 `json:"most_selected"`
	MostCaptained     *int64 `json:"most_captained"`
}

func (e Event) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&e.Name, validation.Required, validation.Length(1, 64)),
		validation.Field(&e.DeadlineTime, validation.Required),
	)
}

// Fixture is the upstream match shape. Event and scores are null until the
// fixture is scheduled and started respectively.
type Fixture struct {
	ID          int64   `json:"id"`
	Code        int64   `json:"code"`
	Event       *int64  `json:"event"`
	KickoffTime *string `json:"kickoff_time"`
	TeamH       int64   `json:"team_h"`
	TeamA       int64   `json:"team_a"`
	TeamHScore  *int    `json:"team_h_score"`
	TeamAScore  *int    `json:"team_a_score"`
	Started     bool    `json:"started"`
	Finished    bool    `json:"finished"`
}

func (f Fixture) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&f.Code, validation.Required, validation.Min(int64(1))),
		validation.Field(&f.TeamH, validation.Required, validation.Min(int64(1))),
		validation.Field(&f.TeamA, validation.Required, validation.Min(int64(1))),
	)
}

// LiveStats is the nested per-round stat block of a live element.
type LiveStats struct {
	Minutes     int `json:"minutes"`
	GoalsScored int `json:"goals_scored"`
	Assists     int `json:"assists"`
	Bonus       int `json:"bonus"`
	TotalPoints int `json:"total_points"`
}

func (s LiveStats) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Minutes, validation.Min(0), validation.Max(120)),
		validation.Field(&s.GoalsScored, validation.Min(0)),
		validation.Field(&s.Assists, validation.Min(0)),
		validation.Field(&s.Bonus, validation.Min(0), validation.Max(3)),
	)
}

// LiveElement is one player's live stat line for a round.
type LiveElement struct {
	ID    int64     `json:"id"`
	Stats LiveStats `json:"stats"`
}

func (l LiveElement) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&l.Stats),
	)
}

// Pick is one slot of an entry's squad for a round. Entry and event ids come
// from the request scope, not the payload.
type Pick struct {
	Element       int64 `json:"element"`
	Position      int   `json:"position"`
	Multiplier    int   `json:"multiplier"`
	IsCaptain     bool  `json:"is_captain"`
	IsViceCaptain bool  `json:"is_vice_captain"`
}

func (p Pick) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Element, validation.Required, validation.Min(int64(1))),
		validation.Field(&p.Position, validation.Required, validation.Min(1), validation.Max(15)),
		validation.Field(&p.Multiplier, validation.Min(0), validation.Max(3)),
	)
}
