// Package teams serves the team directory and the add-team flow. A new team
// carries identity fields, an optional logo image held server-side until the
// confirmed create, and an optional home stadium picked through search or
// created inline via the add-stadium flow.
package teams

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/auth"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/htmx"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/gateway"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/web"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/workflow"
)

// maxLogoBytes caps the uploaded logo size. The backend stores the file
// as-is, so the limit protects this process, not the backend.
const maxLogoBytes = 5 << 20

type Gateway interface {
	ListTeams(ctx context.Context) ([]league.Team, error)
	SearchStadiums(ctx context.Context, name string) ([]league.Stadium, error)
	FindStadiumByID(ctx context.Context, id int64) (*league.Stadium, error)
	CreateTeam(ctx context.Context, team league.Team, logo *gateway.LogoUpload) (league.Team, error)
}

// Draft is the add-team form data. Logo holds the uploaded bytes until the
// confirmed create sends them along in the multipart request.
type Draft struct {
	FullName     string
	ShortName    string
	HeadCoach    string
	HomeKitColor string
	AwayKitColor string
	Achievements string
	Stadium      *league.Stadium
	Logo         *gateway.LogoUpload
}

type Flow struct {
	Form          *workflow.Form[Draft]
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
	if strings.TrimSpace(d.FullName) == "" {
		return errors.New("enter the team's full name")
	}
	return nil
}

func (h *Handlers) submitDraft(ctx context.Context, d Draft) error {
	team := league.Team{
		FullName:     strings.TrimSpace(d.FullName),
		ShortName:    strings.TrimSpace(d.ShortName),
		HeadCoach:    strings.TrimSpace(d.HeadCoach),
		HomeKitColor: strings.TrimSpace(d.HomeKitColor),
		AwayKitColor: strings.TrimSpace(d.AwayKitColor),
		Achievements: strings.TrimSpace(d.Achievements),
		Stadium:      d.Stadium,
	}
	_, err := h.gw.CreateTeam(ctx, team, d.Logo)
	return err
}

type listPage struct {
	Teams []league.Team
	Error string
}

// HandleListPage serves GET /teams.
func (h *Handlers) HandleListPage(w http.ResponseWriter, r *http.Request) {
	page := listPage{}
	teams, err := h.gw.ListTeams(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Listing teams failed")
		page.Error = err.Error()
	} else {
		page.Teams = teams
	}
	h.renderer.Render(w, r, "teams.html", page)
}

type formPage struct {
	Draft          Draft
	Error          string
	StadiumResults []league.Stadium
}

// HandleFormPage serves GET /teams/add. A stadiumId query parameter is the
// return path from the add-stadium flow.
func (h *Handlers) HandleFormPage(w http.ResponseWriter, r *http.Request) {
	flow := h.flow(r)

	if raw := r.URL.Query().Get("stadiumId"); raw != "" {
		if stadiumID, err := strconv.ParseInt(raw, 10, 64); err == nil && stadiumID > 0 {
			if stadium, err := h.gw.FindStadiumByID(r.Context(), stadiumID); err != nil {
				log.Ctx(r.Context()).Warn().Err(err).Int64("stadium_id", stadiumID).Msg("Stadium lookup failed")
			} else if stadium != nil {
				flow.StadiumSearch.Select(*stadium)
				flow.Form.Update(func(d *Draft) { d.Stadium = stadium })
			}
		}
		http.Redirect(w, r, "/teams/add", http.StatusSeeOther)
		return
	}

	h.renderForm(w, r, flow)
}

func (h *Handlers) renderForm(w http.ResponseWriter, r *http.Request, flow *Flow) {
	if flow.Form.State() == workflow.StateConfirming {
		h.renderer.Render(w, r, "confirm_team.html", formPage{
			Draft: flow.Form.Draft(),
			Error: flow.Form.Message(),
		})
		return
	}
	h.renderer.Render(w, r, "add_team.html", formPage{
		Draft:          flow.Form.Draft(),
		Error:          flow.Form.Message(),
		StadiumResults: flow.StadiumSearch.Results(),
	})
}

// HandleReview serves POST /teams/add. The multipart body carries the text
// fields and, optionally, the logo file; an omitted file keeps any logo
// already on the draft.
func (h *Handlers) HandleReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	logo, err := readLogo(r)
	if err != nil {
		http.Error(w, "Could not read the logo upload", http.StatusBadRequest)
		return
	}

	flow := h.flow(r)
	flow.Form.Update(func(d *Draft) {
		d.FullName = r.FormValue("full_name")
		d.ShortName = r.FormValue("short_name")
		d.HeadCoach = r.FormValue("head_coach")
		d.HomeKitColor = r.FormValue("home_kit_color")
		d.AwayKitColor = r.FormValue("away_kit_color")
		d.Achievements = r.FormValue("achievements")
		if logo != nil {
			d.Logo = logo
		}
	})
	flow.Form.Review()
	h.renderForm(w, r, flow)
}

func readLogo(r *http.Request) (*gateway.LogoUpload, error) {
	file, header, err := r.FormFile("logo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxLogoBytes))
	if err != nil {
		return nil, err
	}
	return &gateway.LogoUpload{Filename: header.Filename, Data: data}, nil
}

// HandleConfirm serves POST /teams/add/confirm.
func (h *Handlers) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	flow := h.flow(r)
	if err := flow.Form.Confirm(r.Context()); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Team submission failed")
		h.renderForm(w, r, flow)
		return
	}

	h.flows.Drop(auth.SessionIDFromContext(r.Context()))
	htmx.Redirect(w, r, "/teams")
}

// HandleCancel serves POST /teams/add/cancel.
func (h *Handlers) HandleCancel(w http.ResponseWriter, r *http.Request) {
	flow := h.flow(r)
	flow.Form.Cancel()
	h.renderForm(w, r, flow)
}
