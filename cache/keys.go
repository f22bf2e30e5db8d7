package cache

import (
	"fmt"
	"strings"
)

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// Prefix is the short enumerated tag identifying an entity type's cache
// namespace.
type Prefix string

const (
	PrefixTeams    Prefix = "teams"
	PrefixPlayers  Prefix = "players"
	PrefixEvents   Prefix = "events"
	PrefixFixtures Prefix = "fixtures"
	PrefixLive     Prefix = "live"
	PrefixPicks    Prefix = "picks"
)

// Key builds the season-wide collection key for an entity type:
// {prefix}::{season}.
func Key(p Prefix, season string) string {
	return string(p) + KeySeparator + season
}

// ScopedKey builds the per-scope collection key for an entity type:
// {prefix}::{season}::{scopeId}.
func ScopedKey(p Prefix, season string, scope int64) string {
	return Key(p, season) + KeySeparator + fmt.Sprintf("%d", scope)
}

// ScopedPattern matches every key nested below one scope of an entity type.
// The wildcard sits behind a separator so the scope segment is matched whole:
// a scope 3 pattern never captures scope 30 through 38. The scoped collection
// key itself is not covered; callers that want it invalidate ScopedKey too.
func ScopedPattern(p Prefix, season string, scope int64) string {
	return ScopedKey(p, season, scope) + KeySeparator + "*"
}

// SeasonPattern matches every scoped key of an entity type for one season.
// The season-wide collection key itself is not covered.
func SeasonPattern(p Prefix, season string) string {
	return Key(p, season) + KeySeparator + "*"
}

// Match reports whether key matches pattern. A trailing '*' makes the
// pattern a prefix match; otherwise the match is exact.
func Match(pattern, key string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(key, prefix)
	}
	return key == pattern
}

// SubKey formats a record identifier as a collection sub-key. Sub-keys are
// zero-padded so lexical order equals primary-key order.
func SubKey(id int64) string {
	return fmt.Sprintf("%012d", id)
}

// SubKey2 formats a composite identifier as a collection sub-key, preserving
// (first, second) ordering under lexical sort.
func SubKey2(first, second int64) string {
	return fmt.Sprintf("%012d:%012d", first, second)
}

// SubKey3 formats a three-part composite identifier as a collection sub-key.
func SubKey3(first, second, third int64) string {
	return fmt.Sprintf("%012d:%012d:%012d", first, second, third)
}
