// Package leagues serves the tournament screens: league search, league
// detail, the schedule view, standings, and per-team match history.
package leagues

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/auth"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/schedule"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/web"
)

const leagueIDPathKey = "leagueId"

// Gateway is the slice of the backend client these screens need.
type Gateway interface {
	SearchLeagues(ctx context.Context, name string) ([]league.League, error)
	FindLeagueByID(ctx context.Context, id int64) (*league.League, error)
	RoundsByLeague(ctx context.Context, leagueID int64) ([]league.Round, error)
	MatchesByLeague(ctx context.Context, leagueID int64) ([]league.Match, error)
	ParticipantsByMatch(ctx context.Context, matchID int64) ([]league.LeagueTeamMatch, error)
	Ranking(ctx context.Context, leagueID int64) ([]league.RankingRow, error)
	MatchesByLeagueTeam(ctx context.Context, leagueTeamID int64) ([]league.Match, error)
}

type Handlers struct {
	gw       Gateway
	renderer *web.Renderer
	selected *selectedLeagueCache
}

func NewHandlers(gw Gateway, renderer *web.Renderer) *Handlers {
	return &Handlers{
		gw:       gw,
		renderer: renderer,
		selected: newSelectedLeagueCache(),
	}
}

// DropSessionState clears the per-session selected-league cache on logout.
func (h *Handlers) DropSessionState(sessionID string) {
	h.selected.Drop(sessionID)
}

type searchPage struct {
	Query    string
	Searched bool
	Leagues  []league.League
	Error    string
}

// HandleSearchPage serves GET /tournaments. A search runs only when the form
// was explicitly submitted (the q parameter is present).
func (h *Handlers) HandleSearchPage(w http.ResponseWriter, r *http.Request) {
	page := searchPage{}
	if values := r.URL.Query(); values.Has("q") {
		page.Searched = true
		page.Query = strings.TrimSpace(values.Get("q"))

		leagues, err := h.gw.SearchLeagues(r.Context(), page.Query)
		if err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("League search failed")
			page.Error = err.Error()
		} else {
			page.Leagues = leagues
		}
	}
	h.renderer.Render(w, r, "leagues.html", page)
}

// HandleSelect remembers the chosen league for the detail screen, then
// navigates there.
func (h *Handlers) HandleSelect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	lg := league.League{
		ID:        id,
		Name:      r.FormValue("name"),
		StartDate: r.FormValue("start_date"),
		EndDate:   r.FormValue("end_date"),
	}
	h.selected.Put(auth.SessionIDFromContext(r.Context()), lg)

	http.Redirect(w, r, fmt.Sprintf("/tournaments/%d", id), http.StatusSeeOther)
}

type detailPage struct {
	League league.League
	Error  string
}

// HandleDetail serves GET /tournaments/{leagueId}. The write-once cache from
// the search screen is consumed first; a direct visit falls back to the
// find-by-id adapter.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	leagueID, err := leagueIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	if cached := h.selected.Take(auth.SessionIDFromContext(r.Context()), leagueID); cached != nil {
		h.renderer.Render(w, r, "league_detail.html", detailPage{League: *cached})
		return
	}

	found, err := h.gw.FindLeagueByID(r.Context(), leagueID)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Int64("league_id", leagueID).Msg("League lookup failed")
		h.renderer.Render(w, r, "league_detail.html", detailPage{Error: err.Error()})
		return
	}
	if found == nil {
		h.renderer.Render(w, r, "league_detail.html", detailPage{Error: "League not found"})
		return
	}
	h.renderer.Render(w, r, "league_detail.html", detailPage{League: *found})
}

type rankingPage struct {
	LeagueID int64
	Rows     []league.RankingRow
	Error    string
}

// HandleRanking serves GET /tournaments/{leagueId}/ranking. Standings come
// fully computed from the backend and are rendered as-is.
func (h *Handlers) HandleRanking(w http.ResponseWriter, r *http.Request) {
	leagueID, err := leagueIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	page := rankingPage{LeagueID: leagueID}
	rows, err := h.gw.Ranking(r.Context(), leagueID)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Int64("league_id", leagueID).Msg("Ranking fetch failed")
		page.Error = err.Error()
	} else {
		page.Rows = rows
	}
	h.renderer.Render(w, r, "ranking.html", page)
}

type historyEntry struct {
	Match    league.Match
	HomeTeam string
	AwayTeam string
	Score    string
}

type historyPage struct {
	LeagueID int64
	TeamName string
	Entries  []historyEntry
	Error    string
}

// HandleHistory serves GET /tournaments/{leagueId}/history/{leagueTeamId}.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	leagueID, err := leagueIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}
	leagueTeamID, err := pathID(r, "leagueTeamId")
	if err != nil {
		http.Error(w, "Invalid league team ID", http.StatusBadRequest)
		return
	}

	page := historyPage{LeagueID: leagueID}
	matches, err := h.gw.MatchesByLeagueTeam(r.Context(), leagueTeamID)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Int64("league_team_id", leagueTeamID).Msg("History fetch failed")
		page.Error = err.Error()
		h.renderer.Render(w, r, "history.html", page)
		return
	}

	page.TeamName = teamNameFromHistory(matches, leagueTeamID)
	for _, match := range matches {
		parts := match.LeagueTeamMatches
		page.Entries = append(page.Entries, historyEntry{
			Match:    match,
			HomeTeam: schedule.ResolveParticipantName(parts, league.RoleHome, schedule.HomeFallbackIndex),
			AwayTeam: schedule.ResolveParticipantName(parts, league.RoleAway, schedule.AwayFallbackIndex),
			Score:    schedule.Scoreline(parts),
		})
	}
	h.renderer.Render(w, r, "history.html", page)
}

func teamNameFromHistory(matches []league.Match, leagueTeamID int64) string {
	for _, match := range matches {
		for _, part := range match.LeagueTeamMatches {
			if part.LeagueTeam == nil || part.LeagueTeam.ID != leagueTeamID {
				continue
			}
			if part.LeagueTeam.Team != nil && part.LeagueTeam.Team.FullName != "" {
				return part.LeagueTeam.Team.FullName
			}
		}
	}
	return ""
}

func leagueIDFromRequest(r *http.Request) (int64, error) {
	return pathID(r, leagueIDPathKey)
}

func pathID(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(key))
	if raw == "" {
		return 0, fmt.Errorf("invalid %s", key)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return id, nil
}
