package domain

import (
	"time"

	"github.com/uptrace/bun"
)

// Domain records are the validated, strongly typed representation of upstream
// data. They are constructed only by the mappers in this package and are not
// mutated afterwards; the repository owns their relational form.
//
// Nullable upstream aggregates are stored as explicit sentinels (zero id, zero
// time) rather than pointers, so "not yet computed" and "zero" never need a
// null to tell apart -- the paired flag fields (Finished, Started) carry that
// distinction where it matters.

// Team is one of the competition's clubs, including its current league record.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID        TeamID `bun:"id,pk" json:"id"`
	Code      int64  `bun:"code,notnull" json:"code"`
	Name      string `bun:"name,notnull" json:"name"`
	ShortName string `bun:"short_name,notnull" json:"short_name"`
	Strength  int    `bun:"strength,notnull" json:"strength"`
	Played    int    `bun:"played,notnull" json:"played"`
	Win       int    `bun:"win,notnull" json:"win"`
	Draw      int    `bun:"draw,notnull" json:"draw"`
	Loss      int    `bun:"loss,notnull" json:"loss"`
	Points    int    `bun:"points,notnull" json:"points"`
	Position  int    `bun:"position,notnull" json:"position"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Player is a selectable element belonging to a team.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID           PlayerID `bun:"id,pk" json:"id"`
	Code         int64    `bun:"code,notnull" json:"code"`
	FirstName    string   `bun:"first_name,notnull" json:"first_name"`
	SecondName   string   `bun:"second_name,notnull" json:"second_name"`
	WebName      string   `bun:"web_name,notnull" json:"web_name"`
	TeamID       TeamID   `bun:"team_id,notnull" json:"team_id"`
	PositionType int      `bun:"position_type,notnull" json:"position_type"`
	NowCost      int      `bun:"now_cost,notnull" json:"now_cost"`
	TotalPoints  int      `bun:"total_points,notnull" json:"total_points"`
	SelectedBy   float64  `bun:"selected_by,notnull" json:"selected_by"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Event is a gameweek round. The Most* aggregates are zero until the upstream
// has computed them for a finished round.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID            EventID   `bun:"id,pk" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	DeadlineTime  time.Time `bun:"deadline_time,notnull" json:"deadline_time"`
	Finished      bool      `bun:"finished,notnull" json:"finished"`
	DataChecked   bool      `bun:"data_checked,notnull" json:"data_checked"`
	AverageScore  int       `bun:"average_score,notnull" json:"average_score"`
	HighestScore  int       `bun:"highest_score,notnull" json:"highest_score"`
	MostSelected  PlayerID  `bun:"most_selected,notnull" json:"most_selected"`
	MostCaptained PlayerID  `bun:"most_captained,notnull" json:"most_captained"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Fixture is a scheduled match within one event. Scores are zero until
// Started is true; fixtures are immutable once written (insert-or-ignore).
type Fixture struct {
	bun.BaseModel `bun:"table:fixtures,alias:f"`

	ID          FixtureID `bun:"id,pk" json:"id"`
	Code        int64     `bun:"code,notnull" json:"code"`
	EventID     EventID   `bun:"event_id,notnull" json:"event_id"`
	KickoffTime time.Time `bun:"kickoff_time,nullzero" json:"kickoff_time"`
	HomeTeam    TeamID    `bun:"home_team,notnull" json:"home_team"`
	AwayTeam    TeamID    `bun:"away_team,notnull" json:"away_team"`
	HomeScore   int       `bun:"home_score,notnull" json:"home_score"`
	AwayScore   int       `bun:"away_score,notnull" json:"away_score"`
	Started     bool      `bun:"started,notnull" json:"started"`
	Finished    bool      `bun:"finished,notnull" json:"finished"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Live is one player's in-round stat line, keyed by (event, player).
type Live struct {
	bun.BaseModel `bun:"table:live_stats,alias:l"`

	EventID     EventID  `bun:"event_id,pk" json:"event_id"`
	PlayerID    PlayerID `bun:"element_id,pk" json:"element_id"`
	Minutes     int      `bun:"minutes,notnull" json:"minutes"`
	GoalsScored int      `bun:"goals_scored,notnull" json:"goals_scored"`
	Assists     int      `bun:"assists,notnull" json:"assists"`
	Bonus       int      `bun:"bonus,notnull" json:"bonus"`
	TotalPoints int      `bun:"total_points,notnull" json:"total_points"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Pick is one slot of an entry's squad for one event, keyed by
// (entry, event, position). Picks never change after the round deadline.
type Pick struct {
	bun.BaseModel `bun:"table:picks,alias:pk"`

	EntryID       EntryID  `bun:"entry_id,pk" json:"entry_id"`
	EventID       EventID  `bun:"event_id,pk" json:"event_id"`
	Position      int      `bun:"position,pk" json:"position"`
	PlayerID      PlayerID `bun:"element_id,notnull" json:"element_id"`
	Multiplier    int      `bun:"multiplier,notnull" json:"multiplier"`
	IsCaptain     bool     `bun:"is_captain,notnull" json:"is_captain"`
	IsViceCaptain bool     `bun:"is_vice_captain,notnull" json:"is_vice_captain"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
