package leagues

import (
	"context"
	"errors"
	"testing"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/schedule"
)

type fakeGateway struct {
	Gateway

	rounds      []league.Round
	matches     []league.Match
	parts       map[int64][]league.LeagueTeamMatch
	partsErrors map[int64]error
	roundsErr   error
}

func (f *fakeGateway) RoundsByLeague(ctx context.Context, leagueID int64) ([]league.Round, error) {
	return f.rounds, f.roundsErr
}

func (f *fakeGateway) MatchesByLeague(ctx context.Context, leagueID int64) ([]league.Match, error) {
	return f.matches, nil
}

func (f *fakeGateway) ParticipantsByMatch(ctx context.Context, matchID int64) ([]league.LeagueTeamMatch, error) {
	if err, ok := f.partsErrors[matchID]; ok {
		return nil, err
	}
	return f.parts[matchID], nil
}

func sides(home, away string) []league.LeagueTeamMatch {
	return []league.LeagueTeamMatch{
		{Role: "Home", LeagueTeam: &league.LeagueTeam{Team: &league.Team{FullName: home}}},
		{Role: "Away", LeagueTeam: &league.LeagueTeam{Team: &league.Team{FullName: away}}},
	}
}

func TestLoadScheduleDegradesOnlyTheFailedMatch(t *testing.T) {
	gw := &fakeGateway{
		rounds: []league.Round{{ID: 1, Name: "Round 1", League: &league.League{ID: 5, Name: "V-League"}}},
		matches: []league.Match{
			{ID: 10, Round: &league.Round{ID: 1}, Date: "2025-01-05", TimeStart: "18:00:00"},
			{ID: 11, Round: &league.Round{ID: 1}, Date: "2025-01-06", TimeStart: "18:00:00"},
		},
		parts: map[int64][]league.LeagueTeamMatch{
			11: sides("Hà Nội FC", "HAGL"),
		},
		partsErrors: map[int64]error{10: errors.New("backend timeout")},
	}
	h := NewHandlers(gw, nil)

	page, err := h.loadSchedule(context.Background(), 5)
	if err != nil {
		t.Fatalf("load schedule: %v", err)
	}
	if page.LeagueName != "V-League" {
		t.Fatalf("expected league name from rounds, got %q", page.LeagueName)
	}
	if len(page.Groups) != 1 || len(page.Groups[0].Entries) != 2 {
		t.Fatalf("unexpected groups %+v", page.Groups)
	}

	failed := page.Groups[0].Entries[0]
	if failed.Match.ID != 10 || failed.HomeTeam != schedule.TeamNameUnknown || failed.AwayTeam != schedule.TeamNameUnknown {
		t.Fatalf("expected match 10 degraded to unknown sides, got %+v", failed)
	}
	healthy := page.Groups[0].Entries[1]
	if healthy.HomeTeam != "Hà Nội FC" || healthy.AwayTeam != "HAGL" {
		t.Fatalf("expected match 11 resolved, got %+v", healthy)
	}
}

func TestLoadSchedulePropagatesRoundFetchFailure(t *testing.T) {
	gw := &fakeGateway{roundsErr: errors.New("backend down")}
	h := NewHandlers(gw, nil)

	if _, err := h.loadSchedule(context.Background(), 5); err == nil {
		t.Fatal("expected rounds failure to surface")
	}
}

func TestSelectedLeagueCacheIsWriteOnceReadOnce(t *testing.T) {
	cache := newSelectedLeagueCache()
	cache.Put("session-a", league.League{ID: 7, Name: "V-League"})

	if got := cache.Take("session-a", 7); got == nil || got.Name != "V-League" {
		t.Fatalf("expected cached league, got %v", got)
	}
	if got := cache.Take("session-a", 7); got != nil {
		t.Fatalf("expected cache cleared after first read, got %v", got)
	}
}

func TestSelectedLeagueCacheIgnoresMismatchedID(t *testing.T) {
	cache := newSelectedLeagueCache()
	cache.Put("session-a", league.League{ID: 7, Name: "V-League"})

	if got := cache.Take("session-a", 8); got != nil {
		t.Fatalf("expected nil for mismatched id, got %v", got)
	}
	// The stale entry is gone either way.
	if got := cache.Take("session-a", 7); got != nil {
		t.Fatalf("expected stale entry cleared, got %v", got)
	}
}
