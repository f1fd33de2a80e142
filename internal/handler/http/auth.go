package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/petlovers/community-server/internal/service"
	"github.com/petlovers/community-server/internal/utils"
	"github.com/petlovers/community-server/models"
)

// loginPage hands the front end the state it needs to render the login
// form: the CSRF token and any pending flash message. Members are sent
// straight to the directory.
func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	state := h.session(r)
	if state.Username != "" {
		h.redirect(w, membersRedirect)
		return
	}

	utils.WriteJSON(w, models.StepState{
		CSRFToken: state.CSRFToken,
		Flash:     h.sessions.TakeFlash(state.ID),
	}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.badRequest(w, r, err)
		return
	}

	state := h.session(r)
	in := models.LoginInput{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}

	record, err := h.services.AuthService.Login(r.Context(), in)
	switch {
	case errors.Is(err, service.ErrInvalidDataProvided):
		utils.WriteJSON(w, models.StepState{
			CSRFToken: state.CSRFToken,
			Errors:    []string{msgCredentialsRequired},
		}, http.StatusUnprocessableEntity)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.WriteJSON(w, models.StepState{
			CSRFToken: state.CSRFToken,
			Errors:    []string{msgLoginFailed},
		}, http.StatusUnauthorized)
		return
	case err != nil:
		h.internalError(w, r, err, "login failed")
		return
	}

	// Swap the session ID on privilege change to block fixation, then
	// hand the browser a cookie for the new ID.
	fresh, ok := h.sessions.Regenerate(state.ID)
	if !ok {
		fresh = h.sessions.New()
	}
	fresh.Username = record.Username
	fresh.Draft = models.Draft{}
	fresh.Flash = &models.FlashMessage{
		Kind:    "success",
		Message: fmt.Sprintf("Welcome back, %s!", record.Username),
	}
	h.sessions.Save(fresh)
	h.setSessionCookie(w, fresh.ID)

	h.redirect(w, membersRedirect)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	state := h.session(r)
	h.sessions.Destroy(state.ID)
	h.clearSessionCookie(w)

	// The session is gone, so the goodbye notice rides in the response
	// body instead of a stored flash.
	utils.WriteJSON(w, models.StepState{
		Redirect: loginRedirect,
		Flash:    &models.FlashMessage{Kind: "success", Message: msgLoggedOut},
	}, http.StatusOK)
}
