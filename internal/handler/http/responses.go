package http

import (
	"net/http"

	"github.com/petlovers/community-server/internal/logger"
	"github.com/petlovers/community-server/internal/utils"
	"github.com/petlovers/community-server/models"
)

const (
	loginRedirect   = "/"
	membersRedirect = "/api/members"
	profileRedirect = "/api/profile"
)

// redirect answers a navigation decision: 303 See Other with a Location
// header, plus the same target in the JSON envelope for API clients.
func (h *Handler) redirect(w http.ResponseWriter, location string) {
	w.Header().Set("Location", location)
	utils.WriteJSON(w, models.StepState{Redirect: location}, http.StatusSeeOther)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.FromRequest(r).Err(err).Msg(msg)
	utils.WriteJSON(w, models.StepState{Errors: []string{msgServerError}}, http.StatusInternalServerError)
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Warn().Err(err).Msg("malformed form body")
	utils.WriteJSON(w, models.StepState{Errors: []string{msgBadRequestBody}}, http.StatusBadRequest)
}
