package teams

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/htmx"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

type stadiumFragment struct {
	Query    string
	Error    string
	Stadiums []league.Stadium
	Selected *league.Stadium
}

// HandleStadiumSearch serves POST /teams/add/search-stadium. An empty query
// clears the slot; stale responses are dropped by the slot's sequence guard.
func (h *Handlers) HandleStadiumSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	flow := h.flow(r)
	query := strings.TrimSpace(r.FormValue("q"))
	frag := stadiumFragment{Query: query}

	if query == "" {
		flow.StadiumSearch.Clear()
	} else {
		seq := flow.StadiumSearch.Begin(query)
		stadiums, err := h.gw.SearchStadiums(r.Context(), query)
		if err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("Stadium search failed")
			flow.StadiumSearch.Fail(seq)
			frag.Error = err.Error()
		} else {
			flow.StadiumSearch.Apply(seq, stadiums)
			frag.Stadiums = flow.StadiumSearch.Results()
		}
	}

	h.renderStadiumSlot(w, r, flow, frag)
}

// HandleStadiumSelect serves POST /teams/add/select-stadium.
func (h *Handlers) HandleStadiumSelect(w http.ResponseWriter, r *http.Request) {
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
	var stadium *league.Stadium
	for _, s := range flow.StadiumSearch.Results() {
		if s.ID == id {
			stadium = &s
			break
		}
	}
	if stadium == nil {
		http.Error(w, "Selection is no longer available", http.StatusConflict)
		return
	}

	flow.StadiumSearch.Select(*stadium)
	flow.Form.Update(func(d *Draft) { d.Stadium = stadium })

	h.renderStadiumSlot(w, r, flow, stadiumFragment{})
}

func (h *Handlers) renderStadiumSlot(w http.ResponseWriter, r *http.Request, flow *Flow, frag stadiumFragment) {
	if !htmx.IsRequest(r) {
		h.renderForm(w, r, flow)
		return
	}
	frag.Selected = flow.Form.Draft().Stadium
	h.renderer.Render(w, r, "frag_team_stadium_slot.html", frag)
}
