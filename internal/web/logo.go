package web

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

// LogoURL resolves a team's logo reference into a fetchable URL. Backend
// uploads are stored as relative "uploads/..." paths; absolute URLs pass
// through; teams without a logo get a placeholder built from their initials.
func (rd *Renderer) LogoURL(team league.Team) string {
	name := team.FullName
	if name == "" {
		name = team.ShortName
	}
	return rd.LogoRefURL(team.Logo, name)
}

// LogoRefURL resolves a bare logo reference, for callers that carry the logo
// outside a Team value (e.g. standings rows). name feeds the placeholder.
func (rd *Renderer) LogoRefURL(ref, name string) string {
	logo := strings.TrimSpace(ref)
	if logo == "" {
		return placeholderLogoURL(name)
	}
	if strings.HasPrefix(logo, "http://") || strings.HasPrefix(logo, "https://") {
		return logo
	}
	return rd.backendBaseURL + "/" + strings.TrimPrefix(logo, "/")
}

func placeholderLogoURL(name string) string {
	if name == "" {
		name = "Team"
	}
	initials := strings.ToUpper(firstRunes(name, 2))
	return fmt.Sprintf("https://placehold.co/150/0066CC/FFFFFF?text=%s", url.QueryEscape(initials))
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
