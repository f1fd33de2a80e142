package http

import (
	"net/http"

	"github.com/petlovers/community-server/internal/utils"
	"github.com/petlovers/community-server/models"
)

// requireMember guards the member-only routes. Anonymous visitors are
// bounced to the login surface.
func (h *Handler) requireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.session(r).Username == "" {
			utils.WriteJSON(w, models.StepState{
				Redirect: loginRedirect,
				Errors:   []string{msgLoginRequired},
			}, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
