package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/petlovers/community-server/internal/service"
	"github.com/petlovers/community-server/internal/utils"
	"github.com/petlovers/community-server/models"
)

func stepPath(step int) string {
	return fmt.Sprintf("/api/register/step/%d", step)
}

// registerStart resets the onboarding draft and sends the visitor to
// step 1. Logged-in members have no business in the wizard.
func (h *Handler) registerStart(w http.ResponseWriter, r *http.Request) {
	state := h.session(r)
	if state.Username != "" {
		h.redirect(w, membersRedirect)
		return
	}

	state.Draft = models.Draft{}
	h.sessions.Save(state)

	h.redirect(w, stepPath(service.StepCredentials))
}

func (h *Handler) stepGet(w http.ResponseWriter, r *http.Request) {
	step, ok := h.stepFromURL(w, r)
	if !ok {
		return
	}

	state := h.session(r)
	if state.Username != "" {
		h.redirect(w, membersRedirect)
		return
	}

	if redirect, ok := h.services.OnboardingService.GuardStep(state.Draft, step); !ok {
		h.redirect(w, stepPath(redirect))
		return
	}

	utils.WriteJSON(w, models.StepState{
		Step:      step,
		CSRFToken: state.CSRFToken,
		Values:    stepValues(state.Draft, step),
		Flash:     h.sessions.TakeFlash(state.ID),
	}, http.StatusOK)
}

func (h *Handler) stepPost(w http.ResponseWriter, r *http.Request) {
	step, ok := h.stepFromURL(w, r)
	if !ok {
		return
	}

	state := h.session(r)
	if state.Username != "" {
		h.redirect(w, membersRedirect)
		return
	}

	if redirect, ok := h.services.OnboardingService.GuardStep(state.Draft, step); !ok {
		h.redirect(w, stepPath(redirect))
		return
	}

	if err := parseForm(r); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var (
		draft    models.Draft
		formErrs []string
	)

	switch step {
	case service.StepCredentials:
		in := models.CredentialsInput{
			Username:        strings.TrimSpace(r.PostFormValue("username")),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirm_password"),
		}
		var err error
		draft, formErrs, err = h.services.OnboardingService.Step1(r.Context(), state.Draft, in)
		if err != nil {
			h.internalError(w, r, err, "credentials step failed")
			return
		}
	case service.StepPersonalInfo:
		in := models.PersonalInfoInput{
			FullName: r.PostFormValue("full_name"),
			Email:    strings.TrimSpace(r.PostFormValue("email")),
			Phone:    strings.TrimSpace(r.PostFormValue("phone")),
		}
		draft, formErrs = h.services.OnboardingService.Step2(r.Context(), state.Draft, in)
	case service.StepPhoto:
		in := models.PhotoInput{Photo: fileField(r, "profile_photo")}
		draft, formErrs = h.services.OnboardingService.Step3(r.Context(), state.Draft, in)
	case service.StepPets:
		draft, formErrs = h.services.OnboardingService.Step4(r.Context(), state.Draft, petsInput(r))
	case service.StepConfirm:
		_, draft, formErrs = h.services.OnboardingService.Step5(r.Context(), state.Draft)
	}

	state.Draft = draft
	h.sessions.Save(state)

	if len(formErrs) > 0 {
		utils.WriteJSON(w, models.StepState{
			Step:      step,
			CSRFToken: state.CSRFToken,
			Values:    stepValues(draft, step),
			Errors:    formErrs,
		}, http.StatusUnprocessableEntity)
		return
	}

	if step == service.StepConfirm {
		state.Flash = &models.FlashMessage{Kind: "success", Message: msgRegistrationComplete}
		h.sessions.Save(state)
		h.redirect(w, loginRedirect)
		return
	}

	h.redirect(w, stepPath(step+1))
}

func (h *Handler) stepFromURL(w http.ResponseWriter, r *http.Request) (int, bool) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil || step < service.StepCredentials || step > service.StepConfirm {
		http.NotFound(w, r)
		return 0, false
	}
	return step, true
}

// stepValues is the prefill payload for re-rendering a step's form from
// the draft. Credential material never leaves the server.
func stepValues(draft models.Draft, step int) map[string]any {
	switch step {
	case service.StepCredentials:
		return map[string]any{"username": draft.Username}
	case service.StepPersonalInfo:
		return map[string]any{
			"full_name": draft.FullName,
			"email":     draft.Email,
			"phone":     draft.Phone,
		}
	case service.StepPhoto:
		return map[string]any{"profile_photo": draft.ProfilePhoto}
	case service.StepPets:
		return map[string]any{"pets": draftPets(draft)}
	case service.StepConfirm:
		return map[string]any{
			"username":      draft.Username,
			"full_name":     draft.FullName,
			"email":         draft.Email,
			"phone":         draft.Phone,
			"profile_photo": draft.ProfilePhoto,
			"pets":          draftPets(draft),
		}
	default:
		return nil
	}
}

func draftPets(draft models.Draft) []models.PetRecord {
	if draft.Pets == nil {
		return []models.PetRecord{}
	}
	return draft.Pets
}
