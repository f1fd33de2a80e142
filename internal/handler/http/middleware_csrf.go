package http

import (
	"net/http"

	"github.com/petlovers/community-server/internal/utils"
	"github.com/petlovers/community-server/models"
)

const (
	csrfFormField = "csrf_token"
	csrfHeader    = "X-CSRF-Token"
)

// withCSRF rejects mutating requests whose token does not match the
// session's token. The token is read from the X-CSRF-Token header first,
// then from the csrf_token form field.
func (h *Handler) withCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(csrfHeader)
		if token == "" {
			token = r.FormValue(csrfFormField)
		}

		state := h.session(r)
		if !h.sessions.VerifyCSRF(state.ID, token) {
			utils.WriteJSON(w, models.StepState{
				CSRFToken: state.CSRFToken,
				Errors:    []string{msgInvalidCSRF},
			}, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
