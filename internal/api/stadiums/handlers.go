// Package stadiums serves the add-stadium flow. It is usually entered from
// the add-match or add-team forms; a returnTo parameter carries the caller's
// path so the created stadium's id can be handed back on completion.
package stadiums

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/auth"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/api/htmx"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/web"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/workflow"
)

type Gateway interface {
	CreateStadium(ctx context.Context, stadium league.Stadium) (league.Stadium, error)
}

// Draft is the add-stadium form data. ReturnTo is the caller's local path.
type Draft struct {
	Name     string
	Address  string
	Capacity string
	ReturnTo string
}

// Flow is one session's add-stadium workflow. CreatedID records the id the
// backend assigned, for the hand-back redirect.
type Flow struct {
	Form      *workflow.Form[Draft]
	CreatedID int64
}

type Handlers struct {
	gw       Gateway
	renderer *web.Renderer
	flows    *workflow.Registry[Flow]
}

func NewHandlers(gw Gateway, renderer *web.Renderer) *Handlers {
	h := &Handlers{gw: gw, renderer: renderer, flows: workflow.NewRegistry[Flow]()}
	return h
}

func (h *Handlers) DropSessionState(sessionID string) {
	h.flows.Drop(sessionID)
}

func (h *Handlers) flow(r *http.Request) *Flow {
	sessionID := auth.SessionIDFromContext(r.Context())
	return h.flows.Get(sessionID, func() *Flow {
		flow := &Flow{}
		flow.Form = workflow.New(validateDraft, func(ctx context.Context, d Draft) error {
			created, err := h.gw.CreateStadium(ctx, stadiumFromDraft(d))
			if err != nil {
				return err
			}
			flow.CreatedID = created.ID
			return nil
		})
		return flow
	})
}

func validateDraft(d Draft) error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("enter the stadium name")
	}
	if d.Capacity != "" {
		n, err := strconv.Atoi(strings.TrimSpace(d.Capacity))
		if err != nil || n < 0 {
			return errors.New("capacity must be a whole number")
		}
	}
	return nil
}

func stadiumFromDraft(d Draft) league.Stadium {
	capacity := 0
	if trimmed := strings.TrimSpace(d.Capacity); trimmed != "" {
		capacity, _ = strconv.Atoi(trimmed)
	}
	return league.Stadium{
		Name:     strings.TrimSpace(d.Name),
		Address:  strings.TrimSpace(d.Address),
		Capacity: capacity,
	}
}

type formPage struct {
	Draft Draft
	Error string
}

// HandleFormPage serves GET /stadiums/add?returnTo=.
func (h *Handlers) HandleFormPage(w http.ResponseWriter, r *http.Request) {
	flow := h.flow(r)
	if returnTo := sanitizeReturnTo(r.URL.Query().Get("returnTo")); returnTo != "" {
		flow.Form.Update(func(d *Draft) { d.ReturnTo = returnTo })
	}
	h.renderForm(w, r, flow)
}

func (h *Handlers) renderForm(w http.ResponseWriter, r *http.Request, flow *Flow) {
	page := formPage{Draft: flow.Form.Draft(), Error: flow.Form.Message()}
	if flow.Form.State() == workflow.StateConfirming {
		h.renderer.Render(w, r, "confirm_stadium.html", page)
		return
	}
	h.renderer.Render(w, r, "add_stadium.html", page)
}

// HandleReview serves POST /stadiums/add.
func (h *Handlers) HandleReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	flow := h.flow(r)
	flow.Form.Update(func(d *Draft) {
		d.Name = r.FormValue("name")
		d.Address = r.FormValue("address")
		d.Capacity = r.FormValue("capacity")
	})
	flow.Form.Review()
	h.renderForm(w, r, flow)
}

// HandleConfirm serves POST /stadiums/add/confirm. On success the client goes
// back to wherever it came from, with the new stadium's id appended so the
// caller can select it.
func (h *Handlers) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	flow := h.flow(r)
	if err := flow.Form.Confirm(r.Context()); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Stadium submission failed")
		h.renderForm(w, r, flow)
		return
	}

	target := returnURL(flow.Form.Draft().ReturnTo, flow.CreatedID)
	h.flows.Drop(auth.SessionIDFromContext(r.Context()))
	htmx.Redirect(w, r, target)
}

// HandleCancel serves POST /stadiums/add/cancel.
func (h *Handlers) HandleCancel(w http.ResponseWriter, r *http.Request) {
	flow := h.flow(r)
	flow.Form.Cancel()
	h.renderForm(w, r, flow)
}

func returnURL(returnTo string, createdID int64) string {
	target := returnTo
	if target == "" {
		target = "/tournaments"
	}
	if createdID == 0 {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + "stadiumId=" + strconv.FormatInt(createdID, 10)
}

// sanitizeReturnTo accepts only local absolute paths, rejecting anything that
// could redirect off-site.
func sanitizeReturnTo(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return u.Path + queryString(u)
}

func queryString(u *url.URL) string {
	if u.RawQuery == "" {
		return ""
	}
	return "?" + u.RawQuery
}
