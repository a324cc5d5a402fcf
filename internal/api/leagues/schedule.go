package leagues

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/schedule"
)

// participantFetchLimit bounds the concurrent per-match participant lookups.
const participantFetchLimit = 8

type schedulePage struct {
	LeagueID   int64
	LeagueName string
	Groups     []schedule.Group
	Error      string
}

// HandleSchedule serves GET /tournaments/{leagueId}/schedule.
func (h *Handlers) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	leagueID, err := leagueIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	page, err := h.loadSchedule(r.Context(), leagueID)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Int64("league_id", leagueID).Msg("Schedule load failed")
		h.renderer.Render(w, r, "schedule.html", schedulePage{LeagueID: leagueID, Error: err.Error()})
		return
	}
	h.renderer.Render(w, r, "schedule.html", page)
}

// loadSchedule fetches rounds and matches concurrently, then the per-match
// participant lists as an unordered batch. A failed participant fetch only
// degrades that one match to TeamNameUnknown; the rest of the schedule still
// renders.
func (h *Handlers) loadSchedule(ctx context.Context, leagueID int64) (schedulePage, error) {
	var (
		rounds  []league.Round
		matches []league.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rounds, err = h.gw.RoundsByLeague(gctx, leagueID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = h.gw.MatchesByLeague(gctx, leagueID)
		return err
	})
	if err := g.Wait(); err != nil {
		return schedulePage{}, err
	}

	participants := h.fetchParticipants(ctx, matches)

	page := schedulePage{
		LeagueID: leagueID,
		Groups:   schedule.Build(rounds, matches, participants),
	}
	if len(rounds) > 0 && rounds[0].League != nil {
		page.LeagueName = rounds[0].League.Name
	}
	return page, nil
}

func (h *Handlers) fetchParticipants(ctx context.Context, matches []league.Match) map[int64][]league.LeagueTeamMatch {
	participants := make(map[int64][]league.LeagueTeamMatch, len(matches))
	var mu sync.Mutex

	// The group context is deliberately not used for the individual fetches:
	// one match failing must not cancel its siblings.
	g := new(errgroup.Group)
	g.SetLimit(participantFetchLimit)
	for _, match := range matches {
		if match.ID == 0 {
			continue
		}
		g.Go(func() error {
			parts, err := h.gw.ParticipantsByMatch(ctx, match.ID)
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Int64("match_id", match.ID).Msg("Participant fetch failed")
				parts = nil
			}
			mu.Lock()
			participants[match.ID] = parts
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return participants
}
