// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/petlovers/community-server/internal/logger"
	"github.com/petlovers/community-server/internal/media"
	"github.com/petlovers/community-server/internal/store"
	"github.com/petlovers/community-server/models"
	"golang.org/x/crypto/bcrypt"
)

// Wizard steps in their fixed order. Entering a step requires the
// previous step's completion flag; StepConfirm commits the draft.
const (
	StepCredentials  = 1
	StepPersonalInfo = 2
	StepPhoto        = 3
	StepPets         = 4
	StepConfirm      = 5
)

// onboardingService is the concrete implementation of [OnboardingService].
// Each step validates its own slice of the form, merges the result into
// the draft it was given, and hands the new draft back to the caller; the
// users table is only touched by the live username checks and the final
// commit.
type onboardingService struct {
	users store.UserRepository
	files MediaStore

	bcryptCost int

	// now is injected so tests can pin the registration timestamp.
	now func() time.Time

	logger *logger.Logger
}

// NewOnboardingService constructs an [OnboardingService] wired to the
// given user repository and media store. bcryptCost of 0 falls back to
// the bcrypt default.
func NewOnboardingService(users store.UserRepository, files MediaStore, bcryptCost int, logger *logger.Logger) OnboardingService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &onboardingService{
		users:      users,
		files:      files,
		bcryptCost: bcryptCost,
		now:        time.Now,
		logger:     logger,
	}
}

// GuardStep enforces the ordered-step invariant: step N requires step N-1
// to be complete. The first incomplete step is the redirect target, so a
// visitor who jumps to step 5 with nothing done lands back on step 1.
func (o *onboardingService) GuardStep(draft models.Draft, step int) (int, bool) {
	if step < StepCredentials {
		return StepCredentials, false
	}

	for n := StepCredentials; n < step; n++ {
		if !draft.StepComplete(n) {
			return n, false
		}
	}

	return step, true
}

// Step1 validates the credentials slice: username shape and availability
// (checked live against the users table, not just the draft), password
// length and confirmation. On success the password is hashed and only the
// hash enters the draft.
func (o *onboardingService) Step1(ctx context.Context, draft models.Draft, in models.CredentialsInput) (models.Draft, []string, error) {
	log := logger.FromContext(ctx)

	var errs []string
	username := strings.TrimSpace(in.Username)

	if !usernameRe.MatchString(username) {
		errs = append(errs, MsgUsernameFormat)
	} else {
		taken, err := o.users.Exists(ctx, username)
		if err != nil {
			log.Err(err).Msg("username availability check failed")
			return draft, nil, err
		}
		if taken {
			errs = append(errs, MsgUsernameTaken)
		}
	}

	if len(in.Password) < minPasswordLength {
		errs = append(errs, MsgPasswordLength)
	}
	if in.Password != in.ConfirmPassword {
		errs = append(errs, MsgPasswordsDiffer)
	}

	if len(errs) > 0 {
		return draft, errs, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), o.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return draft, nil, err
	}

	draft.Username = username
	draft.PasswordHash = string(hash)
	draft.Step1Done = true

	return draft, nil, nil
}

// Step2 validates the personal-information slice: full name required,
// email shape, optional loosely-validated phone.
func (o *onboardingService) Step2(ctx context.Context, draft models.Draft, in models.PersonalInfoInput) (models.Draft, []string) {
	var errs []string

	fullName := sanitizeText(in.FullName)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)

	if fullName == "" {
		errs = append(errs, MsgFullNameRequired)
	}
	if !validEmail(email) {
		errs = append(errs, MsgEmailInvalid)
	}
	if !validPhone(phone) {
		errs = append(errs, MsgPhoneInvalid)
	}

	if len(errs) > 0 {
		return draft, errs
	}

	draft.FullName = fullName
	draft.Email = email
	draft.Phone = phone
	draft.Step2Done = true

	return draft, nil
}

// Step3 stages the optional profile photo. A re-upload supersedes the
// previously staged file, which is deleted so abandoned drafts do not
// leak images. Skipping the upload entirely still completes the step.
func (o *onboardingService) Step3(ctx context.Context, draft models.Draft, in models.PhotoInput) (models.Draft, []string) {
	log := logger.FromContext(ctx)

	if in.Photo != nil {
		stored, err := o.files.Store(in.Photo, media.CategoryProfiles)
		if err != nil {
			log.Err(err).Msg("profile photo upload rejected")
			return draft, []string{MsgUploadFailed}
		}

		if draft.ProfilePhoto != "" {
			o.files.Remove(draft.ProfilePhoto, media.CategoryProfiles)
		}
		draft.ProfilePhoto = stored
	}

	draft.Step3Done = true

	return draft, nil
}

// Step4 replaces the draft's pet list with the freshly processed form
// arrays. Indexes are processed independently: one failed photo upload
// blocks advancing but the other pets are still handled, so the user sees
// every problem at once.
func (o *onboardingService) Step4(ctx context.Context, draft models.Draft, in models.PetsInput) (models.Draft, []string) {
	processed, errs := processPets(ctx, o.files, draft.Pets, in)
	if len(errs) > 0 {
		return draft, errs
	}

	draft.Pets = processed
	draft.Step4Done = true

	return draft, nil
}

// Step5 commits the draft. Username uniqueness is re-checked against the
// users table because another registration may have completed during this
// visitor's wizard session; the store's Create enforces the same
// constraint once more inside its critical section, so the race is closed
// at write time rather than merely narrowed.
//
// On success the returned draft is empty: the caller persists that into
// the session, leaving no partial registration state behind.
func (o *onboardingService) Step5(ctx context.Context, draft models.Draft) (models.UserRecord, models.Draft, []string) {
	log := logger.FromContext(ctx)

	taken, err := o.users.Exists(ctx, draft.Username)
	if err != nil {
		log.Err(err).Msg("final username check failed")
		return models.UserRecord{}, draft, []string{MsgSaveFailed}
	}
	if taken {
		return models.UserRecord{}, draft, []string{MsgUsernameTakenDuringFlow}
	}

	pets := draft.Pets
	if pets == nil {
		pets = []models.PetRecord{}
	}

	record := models.UserRecord{
		Username:         draft.Username,
		PasswordHash:     draft.PasswordHash,
		FullName:         draft.FullName,
		Email:            draft.Email,
		Phone:            draft.Phone,
		ProfilePhoto:     draft.ProfilePhoto,
		Pets:             pets,
		RegistrationDate: o.now(),
	}

	if err := o.users.Create(ctx, record); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return models.UserRecord{}, draft, []string{MsgUsernameTakenDuringFlow}
		}

		log.Err(err).Str("username", draft.Username).Msg("saving new account failed")
		return models.UserRecord{}, draft, []string{MsgSaveFailed}
	}

	log.Info().Str("username", record.Username).Msg("registration committed")

	return record, models.Draft{}, nil
}
