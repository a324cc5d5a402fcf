package gateway

import (
	"context"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

// MatchesByLeague returns every match of a league. Participants are usually
// not inlined here; fetch them per match with ParticipantsByMatch.
func (c *Client) MatchesByLeague(ctx context.Context, leagueID int64) ([]league.Match, error) {
	var matches []league.Match
	if err := c.getJSON(ctx, "/api/matches", idQuery("leagueId", leagueID), &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// MatchesByLeagueTeam returns a league team's match history, participants
// inlined.
func (c *Client) MatchesByLeagueTeam(ctx context.Context, leagueTeamID int64) ([]league.Match, error) {
	var matches []league.Match
	if err := c.getJSON(ctx, "/api/matches", idQuery("leagueTeamId", leagueTeamID), &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// ParticipantsByMatch returns the two sides of a match (fewer for malformed
// legacy data).
func (c *Client) ParticipantsByMatch(ctx context.Context, matchID int64) ([]league.LeagueTeamMatch, error) {
	var parts []league.LeagueTeamMatch
	if err := c.getJSON(ctx, "/api/league-team-matches", idQuery("matchId", matchID), &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// CreateMatch persists a new match. The match must carry its round, stadium,
// and both participants inline.
func (c *Client) CreateMatch(ctx context.Context, match league.Match) (league.Match, error) {
	var created league.Match
	if err := c.postJSON(ctx, "/api/matches", match, &created); err != nil {
		return league.Match{}, err
	}
	return created, nil
}
