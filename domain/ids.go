package domain

// Branded identifier types. Keeping these distinct at the type level prevents
// an event id from being passed where a player id is expected even though both
// are small integers on the wire.
type (
	// TeamID identifies one of the competition's clubs.
	TeamID int64

	// PlayerID identifies a player (an "element" in the upstream API).
	PlayerID int64

	// EventID identifies a gameweek round.
	EventID int64

	// EntryID identifies a manager's entry (their fantasy squad).
	EntryID int64

	// FixtureID identifies a scheduled match.
	FixtureID int64
)

// The competition runs a fixed number of rounds per season.
const (
	FirstEvent EventID = 1
	LastEvent  EventID = 38
)

// Valid reports whether the event id lies within the competition's round range.
func (id EventID) Valid() bool {
	return id >= FirstEvent && id <= LastEvent
}
