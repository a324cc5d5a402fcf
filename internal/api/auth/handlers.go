package auth

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"github.com/rs/zerolog/log"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/gateway"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/web"
)

// phoneRegion is the default region for national-format phone numbers on the
// registration form.
const phoneRegion = "VN"

// Gateway is the slice of the backend client the auth screens need.
type Gateway interface {
	Authenticate(ctx context.Context, username, password string) (league.Employee, error)
	Register(ctx context.Context, req gateway.RegisterRequest) (gateway.RegisterResponse, error)
}

type Handlers struct {
	gw       Gateway
	sessions *Sessions
	renderer *web.Renderer
	limiter  *loginLimiter
	onLogout []func(sessionID string)
}

func NewHandlers(gw Gateway, sessions *Sessions, renderer *web.Renderer) *Handlers {
	return &Handlers{
		gw:       gw,
		sessions: sessions,
		renderer: renderer,
		limiter:  newLoginLimiter(),
	}
}

// OnLogout registers a cleanup callback invoked with the revoked session id,
// used to drop per-session drafts and caches.
func (h *Handlers) OnLogout(fn func(sessionID string)) {
	h.onLogout = append(h.onLogout, fn)
}

type loginPage struct {
	Error    string
	Username string
}

func (h *Handlers) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if EmployeeFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, r, "login.html", loginPage{})
}

func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if !h.limiter.Allow(clientAddr(r)) {
		h.renderer.Render(w, r, "login.html", loginPage{
			Error:    "Too many login attempts, try again shortly",
			Username: username,
		})
		return
	}

	if username == "" || password == "" {
		h.renderer.Render(w, r, "login.html", loginPage{
			Error:    "Username and password are required",
			Username: username,
		})
		return
	}

	employee, err := h.gw.Authenticate(r.Context(), username, password)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Str("username", username).Msg("Login failed")
		h.renderer.Render(w, r, "login.html", loginPage{Error: err.Error(), Username: username})
		return
	}

	if err := h.sessions.Create(r.Context(), w, employee); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to create session")
		h.renderer.Render(w, r, "login.html", loginPage{Error: "Could not start a session", Username: username})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

type registerPage struct {
	Error string
	Form  gateway.RegisterRequest
}

func (h *Handlers) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if EmployeeFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, r, "register.html", registerPage{})
}

func (h *Handlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := gateway.RegisterRequest{
		Username:    strings.TrimSpace(r.FormValue("username")),
		Password:    r.FormValue("password"),
		Email:       strings.TrimSpace(r.FormValue("email")),
		DateOfBirth: strings.TrimSpace(r.FormValue("date_of_birth")),
		Address:     strings.TrimSpace(r.FormValue("address")),
		PhoneNumber: strings.TrimSpace(r.FormValue("phone_number")),
	}

	if form.Username == "" || form.Password == "" || form.Email == "" {
		h.renderer.Render(w, r, "register.html", registerPage{
			Error: "Username, password, and email are required",
			Form:  form,
		})
		return
	}

	if form.PhoneNumber != "" {
		normalized, err := normalizePhone(form.PhoneNumber)
		if err != nil {
			h.renderer.Render(w, r, "register.html", registerPage{
				Error: "Phone number is not valid",
				Form:  form,
			})
			return
		}
		form.PhoneNumber = normalized
	}

	if _, err := h.gw.Register(r.Context(), form); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Str("username", form.Username).Msg("Registration failed")
		h.renderer.Render(w, r, "register.html", registerPage{Error: err.Error(), Form: form})
		return
	}

	// Registration succeeded; log the new account straight in.
	employee, err := h.gw.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := h.sessions.Create(r.Context(), w, employee); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to create session")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

type dashboardPage struct {
	Employee *league.Employee
}

// HandleDashboard serves GET /dashboard.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "dashboard.html", dashboardPage{Employee: EmployeeFromContext(r.Context())})
}

func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessions.Destroy(w, r)
	if sessionID != "" {
		for _, fn := range h.onLogout {
			fn(sessionID)
		}
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func normalizePhone(raw string) (string, error) {
	parsed, err := phonenumbers.Parse(raw, phoneRegion)
	if err != nil {
		return "", err
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", phonenumbers.ErrNotANumber
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
