package matches

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/htmx"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

const (
	slotHome    = "home"
	slotAway    = "away"
	slotStadium = "stadium"
)

type slotFragment struct {
	LeagueID int64
	Slot     string
	Query    string
	Error    string

	Teams        []league.LeagueTeam
	Stadiums     []league.Stadium
	SelectedTeam *league.LeagueTeam
	SelectedStad *league.Stadium
}

// HandleSearch serves POST .../add-match/search?slot=. Each search is tagged
// with a slot sequence number so a slow response cannot overwrite a newer
// query's results. An empty query clears the slot.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueId")
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	flow := h.flow(r)
	slot := r.FormValue("slot")
	query := strings.TrimSpace(r.FormValue("q"))

	frag := slotFragment{LeagueID: leagueID, Slot: slot, Query: query}
	switch slot {
	case slotHome, slotAway:
		search := &flow.HomeSearch
		if slot == slotAway {
			search = &flow.AwaySearch
		}
		if query == "" {
			search.Clear()
			break
		}
		seq := search.Begin(query)
		teams, err := h.gw.SearchLeagueTeams(r.Context(), query)
		if err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Str("slot", slot).Msg("Team search failed")
			search.Fail(seq)
			frag.Error = err.Error()
			break
		}
		search.Apply(seq, teams)
		frag.Teams = search.Results()
	case slotStadium:
		if query == "" {
			flow.StadiumSearch.Clear()
			break
		}
		seq := flow.StadiumSearch.Begin(query)
		stadiums, err := h.gw.SearchStadiums(r.Context(), query)
		if err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("Stadium search failed")
			flow.StadiumSearch.Fail(seq)
			frag.Error = err.Error()
			break
		}
		flow.StadiumSearch.Apply(seq, stadiums)
		frag.Stadiums = flow.StadiumSearch.Results()
	default:
		http.Error(w, "Unknown search slot", http.StatusBadRequest)
		return
	}

	h.renderSlot(w, r, leagueID, flow, frag)
}

// HandleSelect serves POST .../add-match/select?slot=&id=. The picked entity
// must come from the slot's current result set.
func (h *Handlers) HandleSelect(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueId")
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid selection", http.StatusBadRequest)
		return
	}

	flow := h.flow(r)
	slot := r.FormValue("slot")
	frag := slotFragment{LeagueID: leagueID, Slot: slot}

	switch slot {
	case slotHome, slotAway:
		search := &flow.HomeSearch
		if slot == slotAway {
			search = &flow.AwaySearch
		}
		team, ok := teamByID(search.Results(), id)
		if !ok {
			http.Error(w, "Selection is no longer available", http.StatusConflict)
			return
		}
		search.Select(team)
		flow.Form.Update(func(d *Draft) {
			if slot == slotHome {
				d.HomeTeam = &team
			} else {
				d.AwayTeam = &team
			}
		})
	case slotStadium:
		stadium, ok := stadiumByID(flow.StadiumSearch.Results(), id)
		if !ok {
			http.Error(w, "Selection is no longer available", http.StatusConflict)
			return
		}
		flow.StadiumSearch.Select(stadium)
		flow.Form.Update(func(d *Draft) { d.Stadium = &stadium })
	default:
		http.Error(w, "Unknown search slot", http.StatusBadRequest)
		return
	}

	h.renderSlot(w, r, leagueID, flow, frag)
}

func (h *Handlers) renderSlot(w http.ResponseWriter, r *http.Request, leagueID int64, flow *Flow, frag slotFragment) {
	if !htmx.IsRequest(r) {
		h.renderForm(w, r, leagueID, flow)
		return
	}
	draft := flow.Form.Draft()
	switch frag.Slot {
	case slotHome:
		frag.SelectedTeam = draft.HomeTeam
		h.renderer.Render(w, r, "frag_team_slot.html", frag)
	case slotAway:
		frag.SelectedTeam = draft.AwayTeam
		h.renderer.Render(w, r, "frag_team_slot.html", frag)
	case slotStadium:
		frag.SelectedStad = draft.Stadium
		h.renderer.Render(w, r, "frag_stadium_slot.html", frag)
	}
}

func teamByID(teams []league.LeagueTeam, id int64) (league.LeagueTeam, bool) {
	for _, t := range teams {
		if t.ID == id {
			return t, true
		}
	}
	return league.LeagueTeam{}, false
}

func stadiumByID(stadiums []league.Stadium, id int64) (league.Stadium, bool) {
	for _, s := range stadiums {
		if s.ID == id {
			return s, true
		}
	}
	return league.Stadium{}, false
}
