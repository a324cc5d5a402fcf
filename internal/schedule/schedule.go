// Package schedule turns the flat round and match collections served by the
// backend into a display-ready, round-grouped, time-ordered schedule with each
// match's home and away names resolved. Everything here is pure: no I/O, no
// errors, missing data degrades to the TeamNameUnknown sentinel.
package schedule

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

// TeamNameUnknown marks a side whose participant record is missing or carries
// no resolvable team name.
const TeamNameUnknown = "N/A"

// Fallback indexes used when no participant carries the wanted role. Away
// deliberately falls back to index 1, not "the other entry": legacy matches
// stored participants without roles but in home/away order.
const (
	HomeFallbackIndex = 0
	AwayFallbackIndex = 1
)

// Entry is one match inside a round group with its sides resolved.
type Entry struct {
	Match    league.Match
	HomeTeam string
	AwayTeam string
}

// Group holds one round's matches in kickoff order. A group may be empty;
// callers skip rendering those but can still count them.
type Group struct {
	Round   league.Round
	Entries []Entry
}

// Build groups matches by round and resolves each match's sides.
//
// Groups come out in the input order of rounds; rounds are never re-sorted
// here, the caller controls that. A match whose round reference does not name
// any round in the input belongs to a different aggregation and is dropped
// silently. Within a group, matches sort ascending by (date, timeStart) with
// ties keeping their input order.
//
// participants maps match id to that match's sides; a match with no map entry
// falls back to its inline participant list.
func Build(rounds []league.Round, matches []league.Match, participants map[int64][]league.LeagueTeamMatch) []Group {
	groups := make([]Group, len(rounds))
	index := make(map[int64]int, len(rounds))
	for i, round := range rounds {
		groups[i] = Group{Round: round}
		index[round.ID] = i
	}

	for _, match := range matches {
		if match.Round == nil {
			continue
		}
		i, ok := index[match.Round.ID]
		if !ok {
			continue
		}
		parts := participantsFor(match, participants)
		groups[i].Entries = append(groups[i].Entries, Entry{
			Match:    match,
			HomeTeam: ResolveParticipantName(parts, league.RoleHome, HomeFallbackIndex),
			AwayTeam: ResolveParticipantName(parts, league.RoleAway, AwayFallbackIndex),
		})
	}

	for i := range groups {
		entries := groups[i].Entries
		sort.SliceStable(entries, func(a, b int) bool {
			if entries[a].Match.Date != entries[b].Match.Date {
				return entries[a].Match.Date < entries[b].Match.Date
			}
			return entries[a].Match.TimeStart < entries[b].Match.TimeStart
		})
	}

	return groups
}

func participantsFor(match league.Match, participants map[int64][]league.LeagueTeamMatch) []league.LeagueTeamMatch {
	if parts, ok := participants[match.ID]; ok {
		return parts
	}
	return match.LeagueTeamMatches
}

// ResolveParticipantName finds the side with the wanted role, comparing roles
// case-insensitively; the first match wins when roles are duplicated. When no
// participant carries the role, the entry at fallbackIndex supplies the name.
// Anything still unresolved comes back as TeamNameUnknown.
func ResolveParticipantName(parts []league.LeagueTeamMatch, role string, fallbackIndex int) string {
	if len(parts) == 0 {
		return TeamNameUnknown
	}

	for _, part := range parts {
		if part.Role != "" && strings.EqualFold(part.Role, role) {
			if name := teamFullName(part); name != "" {
				return name
			}
			break
		}
	}

	if fallbackIndex < len(parts) {
		if name := teamFullName(parts[fallbackIndex]); name != "" {
			return name
		}
	}
	return TeamNameUnknown
}

func teamFullName(part league.LeagueTeamMatch) string {
	if part.LeagueTeam == nil || part.LeagueTeam.Team == nil {
		return ""
	}
	return part.LeagueTeam.Team.FullName
}

// Scoreline renders "home - away" goals for a finished match, reading absent
// goal counts as zero.
func Scoreline(parts []league.LeagueTeamMatch) string {
	home := goalsFor(parts, league.RoleHome, HomeFallbackIndex)
	away := goalsFor(parts, league.RoleAway, AwayFallbackIndex)
	return home + " - " + away
}

func goalsFor(parts []league.LeagueTeamMatch, role string, fallbackIndex int) string {
	for _, part := range parts {
		if part.Role != "" && strings.EqualFold(part.Role, role) {
			return strconv.Itoa(part.Goals())
		}
	}
	if fallbackIndex < len(parts) {
		return strconv.Itoa(parts[fallbackIndex].Goals())
	}
	return "0"
}
