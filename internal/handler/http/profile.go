package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/petlovers/community-server/internal/store"
	"github.com/petlovers/community-server/internal/utils"
	"github.com/petlovers/community-server/models"
)

func (h *Handler) members(w http.ResponseWriter, r *http.Request) {
	state := h.session(r)

	views, err := h.services.ProfileService.ListMembers(r.Context())
	if err != nil {
		h.internalError(w, r, err, "listing members failed")
		return
	}

	utils.WriteJSON(w, models.MembersPage{
		Members: views,
		Flash:   h.sessions.TakeFlash(state.ID),
	}, http.StatusOK)
}

func (h *Handler) profileGet(w http.ResponseWriter, r *http.Request) {
	state := h.session(r)

	view, err := h.services.ProfileService.Member(r.Context(), state.Username)
	if err != nil {
		h.staleOrInternal(w, r, state.ID, err, "loading profile failed")
		return
	}

	utils.WriteJSON(w, models.ProfilePage{
		Profile:   view,
		CSRFToken: state.CSRFToken,
		Flash:     h.sessions.TakeFlash(state.ID),
	}, http.StatusOK)
}

func (h *Handler) profileUpdate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.badRequest(w, r, err)
		return
	}

	state := h.session(r)
	in := models.ProfileUpdateInput{
		FullName:        r.PostFormValue("full_name"),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Phone:           strings.TrimSpace(r.PostFormValue("phone")),
		NewPassword:     r.PostFormValue("new_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
		Photo:           fileField(r, "profile_photo"),
		Pets:            petsInput(r),
	}

	formErrs, err := h.services.ProfileService.Update(r.Context(), state.Username, in)
	if err != nil {
		h.staleOrInternal(w, r, state.ID, err, "profile update failed")
		return
	}

	if len(formErrs) > 0 {
		view, err := h.services.ProfileService.Member(r.Context(), state.Username)
		if err != nil {
			h.staleOrInternal(w, r, state.ID, err, "loading profile failed")
			return
		}

		utils.WriteJSON(w, models.ProfilePage{
			Profile:   view,
			CSRFToken: state.CSRFToken,
			Errors:    formErrs,
		}, http.StatusUnprocessableEntity)
		return
	}

	state.Flash = &models.FlashMessage{Kind: "success", Message: msgProfileUpdated}
	h.sessions.Save(state)

	h.redirect(w, profileRedirect)
}

func (h *Handler) profileDelete(w http.ResponseWriter, r *http.Request) {
	state := h.session(r)

	if err := h.services.ProfileService.Delete(r.Context(), state.Username); err != nil {
		h.staleOrInternal(w, r, state.ID, err, "account deletion failed")
		return
	}

	h.sessions.Destroy(state.ID)
	h.clearSessionCookie(w)

	utils.WriteJSON(w, models.StepState{
		Redirect: loginRedirect,
		Flash:    &models.FlashMessage{Kind: "info", Message: msgAccountDeleted},
	}, http.StatusOK)
}

// staleOrInternal distinguishes a session pointing at a record that no
// longer exists (the account was deleted elsewhere) from a genuine
// failure. Stale sessions are torn down and the visitor bounced to login.
func (h *Handler) staleOrInternal(w http.ResponseWriter, r *http.Request, sessionID string, err error, msg string) {
	if errors.Is(err, store.ErrNoUserWasFound) {
		h.sessions.Destroy(sessionID)
		h.clearSessionCookie(w)
		utils.WriteJSON(w, models.StepState{
			Redirect: loginRedirect,
			Errors:   []string{msgLoginRequired},
		}, http.StatusUnauthorized)
		return
	}

	h.internalError(w, r, err, msg)
}
