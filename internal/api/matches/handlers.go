// Package matches serves the add-match flow: pick a round, fill in the match
// form with its three search sub-flows, preview, confirm. One workflow state
// machine instance per session carries the draft across requests.
package matches

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/auth"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/htmx"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/web"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/workflow"
)

// Gateway is the slice of the backend client the add-match flow needs.
type Gateway interface {
	SearchRounds(ctx context.Context, leagueID int64, name string) ([]league.Round, error)
	SearchLeagueTeams(ctx context.Context, name string) ([]league.LeagueTeam, error)
	SearchStadiums(ctx context.Context, name string) ([]league.Stadium, error)
	FindStadiumByID(ctx context.Context, id int64) (*league.Stadium, error)
	CreateMatch(ctx context.Context, match league.Match) (league.Match, error)
}

// Draft is the add-match form data. Date stays in the day/month/year literal
// the form collects; normalization to the backend formats happens at submit.
type Draft struct {
	LeagueID  int64
	RoundID   int64
	RoundName string
	Date      string
	Time      string
	HomeTeam  *league.LeagueTeam
	AwayTeam  *league.LeagueTeam
	Stadium   *league.Stadium
}

// Flow is one session's add-match workflow: the two-phase form plus its three
// independent search slots.
type Flow struct {
	Form          *workflow.Form[Draft]
	HomeSearch    workflow.SearchSlot[league.LeagueTeam]
	AwaySearch    workflow.SearchSlot[league.LeagueTeam]
	StadiumSearch workflow.SearchSlot[league.Stadium]
}

type Handlers struct {
	gw       Gateway
	renderer *web.Renderer
	flows    *workflow.Registry[Flow]
}

func NewHandlers(gw Gateway, renderer *web.Renderer) *Handlers {
	return &Handlers{
		gw:       gw,
		renderer: renderer,
		flows:    workflow.NewRegistry[Flow](),
	}
}

// DropSessionState discards the session's draft on logout.
func (h *Handlers) DropSessionState(sessionID string) {
	h.flows.Drop(sessionID)
}

func (h *Handlers) flow(r *http.Request) *Flow {
	sessionID := auth.SessionIDFromContext(r.Context())
	return h.flows.Get(sessionID, func() *Flow {
		return &Flow{Form: workflow.New(validateDraft, h.submitDraft)}
	})
}

func validateDraft(d Draft) error {
	if d.RoundID <= 0 {
		return errors.New("pick a round before adding a match")
	}
	if d.Date == "" || d.Time == "" {
		return errors.New("enter the match date and kickoff time")
	}
	if d.HomeTeam == nil {
		return errors.New("choose a home team")
	}
	if d.AwayTeam == nil {
		return errors.New("choose an away team")
	}
	if d.Stadium == nil {
		return errors.New("choose a stadium")
	}
	if d.HomeTeam.ID == d.AwayTeam.ID {
		return errors.New("home and away teams must differ")
	}
	return nil
}

func (h *Handlers) submitDraft(ctx context.Context, d Draft) error {
	date, err := league.NormalizeDate(d.Date)
	if err != nil {
		return errors.New("the match date must be in day/month/year form")
	}

	match := league.Match{
		Date:      date,
		TimeStart: league.NormalizeTime(d.Time),
		Round:     &league.Round{ID: d.RoundID},
		Stadium:   d.Stadium,
		LeagueTeamMatches: []league.LeagueTeamMatch{
			{Role: league.RoleHome, LeagueTeam: d.HomeTeam},
			{Role: league.RoleAway, LeagueTeam: d.AwayTeam},
		},
	}
	_, err = h.gw.CreateMatch(ctx, match)
	return err
}

type selectRoundPage struct {
	LeagueID int64
	Query    string
	Searched bool
	Rounds   []league.Round
	Error    string
}

// HandleSelectRound serves GET /tournaments/{leagueId}/schedule/select-round.
func (h *Handlers) HandleSelectRound(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueId")
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	page := selectRoundPage{LeagueID: leagueID}
	if values := r.URL.Query(); values.Has("q") {
		page.Searched = true
		page.Query = strings.TrimSpace(values.Get("q"))
		if page.Query == "" {
			page.Error = "Enter a round name to search"
		} else if rounds, err := h.gw.SearchRounds(r.Context(), leagueID, page.Query); err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("Round search failed")
			page.Error = err.Error()
		} else {
			page.Rounds = rounds
		}
	}
	h.renderer.Render(w, r, "select_round.html", page)
}

type formPage struct {
	LeagueID int64
	Draft    Draft
	Error    string

	HomeResults    []league.LeagueTeam
	AwayResults    []league.LeagueTeam
	StadiumResults []league.Stadium
}

// HandleFormPage serves GET /tournaments/{leagueId}/schedule/add-match. A
// roundId query parameter (re)binds the draft's round; a stadiumId parameter
// is the return path from the add-stadium flow and resolves through the
// find-by-id adapter before being stripped from the URL.
func (h *Handlers) HandleFormPage(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueId")
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	flow := h.flow(r)
	values := r.URL.Query()

	if raw := values.Get("roundId"); raw != "" {
		roundID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || roundID <= 0 {
			http.Error(w, "Invalid round ID", http.StatusBadRequest)
			return
		}
		flow.Form.Update(func(d *Draft) {
			if d.RoundID != roundID {
				*d = Draft{Time: "19:00"}
				d.RoundID = roundID
			}
			d.LeagueID = leagueID
		})
		flow.Form.Cancel()
	}

	if raw := values.Get("stadiumId"); raw != "" {
		if stadiumID, err := strconv.ParseInt(raw, 10, 64); err == nil && stadiumID > 0 {
			if stadium, err := h.gw.FindStadiumByID(r.Context(), stadiumID); err != nil {
				log.Ctx(r.Context()).Warn().Err(err).Int64("stadium_id", stadiumID).Msg("Stadium lookup failed")
			} else if stadium != nil {
				flow.StadiumSearch.Select(*stadium)
				flow.Form.Update(func(d *Draft) { d.Stadium = stadium })
			}
		}
		values.Del("stadiumId")
		redirect := r.URL.Path
		if encoded := values.Encode(); encoded != "" {
			redirect += "?" + encoded
		}
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}

	h.renderForm(w, r, leagueID, flow)
}

func (h *Handlers) renderForm(w http.ResponseWriter, r *http.Request, leagueID int64, flow *Flow) {
	if flow.Form.State() == workflow.StateConfirming {
		h.renderer.Render(w, r, "confirm_match.html", formPage{
			LeagueID: leagueID,
			Draft:    flow.Form.Draft(),
			Error:    flow.Form.Message(),
		})
		return
	}
	h.renderer.Render(w, r, "add_match.html", formPage{
		LeagueID:       leagueID,
		Draft:          flow.Form.Draft(),
		Error:          flow.Form.Message(),
		HomeResults:    flow.HomeSearch.Results(),
		AwayResults:    flow.AwaySearch.Results(),
		StadiumResults: flow.StadiumSearch.Results(),
	})
}

// HandleReview serves POST .../add-match: copy the posted fields into the
// draft and try to advance to the confirmation preview.
func (h *Handlers) HandleReview(w http.ResponseWriter, r *http.Request) {
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
	flow.Form.Update(func(d *Draft) {
		d.Date = strings.TrimSpace(r.FormValue("date"))
		d.Time = strings.TrimSpace(r.FormValue("time"))
	})
	flow.Form.Review()
	h.renderForm(w, r, leagueID, flow)
}

// HandleConfirm serves POST .../add-match/confirm: the one create call. On
// success the flow is discarded and the client returns to the schedule; on
// failure the confirmation screen shows the error with the draft intact.
func (h *Handlers) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueId")
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}

	flow := h.flow(r)
	if err := flow.Form.Confirm(r.Context()); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Match submission failed")
		h.renderForm(w, r, leagueID, flow)
		return
	}

	h.flows.Drop(auth.SessionIDFromContext(r.Context()))
	htmx.Redirect(w, r, fmt.Sprintf("/tournaments/%d/schedule", leagueID))
}

// HandleCancel serves POST .../add-match/cancel: back from the preview to the
// form, draft retained.
func (h *Handlers) HandleCancel(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueId")
	if err != nil {
		http.Error(w, "Invalid league ID", http.StatusBadRequest)
		return
	}
	flow := h.flow(r)
	flow.Form.Cancel()
	h.renderForm(w, r, leagueID, flow)
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
