package htmx

import (
	"net/http"
	"strings"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// Redirect asks the HTMX client to perform a full-page navigation; plain
// requests get an ordinary 303.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	if IsRequest(r) {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
