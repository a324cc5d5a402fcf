package gateway

import (
	"context"
	"net/url"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

// SearchLeagues returns leagues whose name contains the given substring. An
// empty name returns every league.
func (c *Client) SearchLeagues(ctx context.Context, name string) ([]league.League, error) {
	query := url.Values{}
	query.Set("name", name)

	var leagues []league.League
	if err := c.getJSON(ctx, "/api/leagues", query, &leagues); err != nil {
		return nil, err
	}
	return leagues, nil
}

// FindLeagueByID looks a league up through the search endpoint. The backend
// has no direct league-by-id lookup, so this is the one sanctioned place for
// the search-all-then-filter workaround.
func (c *Client) FindLeagueByID(ctx context.Context, id int64) (*league.League, error) {
	leagues, err := c.SearchLeagues(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range leagues {
		if leagues[i].ID == id {
			return &leagues[i], nil
		}
	}
	return nil, nil
}

// RoundsByLeague returns every round of a league, in backend order. Callers
// depend on that order being preserved end to end.
func (c *Client) RoundsByLeague(ctx context.Context, leagueID int64) ([]league.Round, error) {
	var rounds []league.Round
	if err := c.getJSON(ctx, "/api/rounds", idQuery("leagueId", leagueID), &rounds); err != nil {
		return nil, err
	}
	return rounds, nil
}

// SearchRounds returns a league's rounds whose name contains the substring.
func (c *Client) SearchRounds(ctx context.Context, leagueID int64, name string) ([]league.Round, error) {
	query := idQuery("leagueId", leagueID)
	query.Set("name", name)

	var rounds []league.Round
	if err := c.getJSON(ctx, "/api/rounds", query, &rounds); err != nil {
		return nil, err
	}
	return rounds, nil
}

// Ranking returns the backend-computed standings for a league. Nothing here
// recomputes or reorders them.
func (c *Client) Ranking(ctx context.Context, leagueID int64) ([]league.RankingRow, error) {
	var rows []league.RankingRow
	if err := c.getJSON(ctx, "/api/rankings", idQuery("leagueId", leagueID), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchLeagueTeams returns league participations whose team name contains
// the substring.
func (c *Client) SearchLeagueTeams(ctx context.Context, name string) ([]league.LeagueTeam, error) {
	query := url.Values{}
	query.Set("name", name)

	var teams []league.LeagueTeam
	if err := c.getJSON(ctx, "/api/league-teams", query, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}
