package schema

import (
	"github.com/goccy/go-json"
)

// Envelope documents returned by the external API. Element arrays are kept as
// raw messages so DecodeBatch can reject individual elements without losing
// the rest of the document.

// BootstrapDocument is the season-wide snapshot: events, teams and players in
// a single response.
type BootstrapDocument struct {
	Events   []json.RawMessage `json:"events"`
	Teams    []json.RawMessage `json:"teams"`
	Elements []json.RawMessage `json:"elements"`
}

// LiveDocument wraps the per-event live stat lines.
type LiveDocument struct {
	Elements []json.RawMessage `json:"elements"`
}

// PicksDocument wraps an entry's picks for one event.
type PicksDocument struct {
	Picks []json.RawMessage `json:"picks"`
}
