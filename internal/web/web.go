// Package web renders the admin screens from templates embedded in the
// binary. Pages share the layout partials; the small fragment templates are
// returned to HTMX requests during the in-form search sub-flows.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Renderer struct {
	templates      *template.Template
	backendBaseURL string
}

// New parses the embedded templates. backendBaseURL resolves relative upload
// paths (team logos) served by the backend.
func New(backendBaseURL string) (*Renderer, error) {
	r := &Renderer{backendBaseURL: backendBaseURL}

	templates, err := template.New("").Funcs(template.FuncMap{
		"displayDate": league.FormatDisplayDate,
		"displayTime": league.FormatDisplayTime,
		"logoURL":     r.LogoURL,
		"logoRefURL":  r.LogoRefURL,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	r.templates = templates
	return r, nil
}

// Render executes the named template. Render failures are logged and answered
// with a bare 500; the buffer keeps half-written pages off the wire.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := rd.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("Template render failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
