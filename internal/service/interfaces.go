package service

import (
	"context"

	"github.com/petlovers/community-server/models"
)

// OnboardingService drives the five-step registration wizard. Every step
// method is a pure function of (current draft, input): it returns the new
// draft together with the user-facing validation errors collected for the
// request, and never touches shared draft state itself.
type OnboardingService interface {
	// GuardStep checks the transition guard for entering step. When the
	// previous step has not been completed it reports ok=false and the
	// step the visitor should be redirected to. This is a navigation
	// guard, not a validation failure: no error message is attached.
	GuardStep(draft models.Draft, step int) (redirect int, ok bool)

	Step1(ctx context.Context, draft models.Draft, in models.CredentialsInput) (models.Draft, []string, error)
	Step2(ctx context.Context, draft models.Draft, in models.PersonalInfoInput) (models.Draft, []string)
	Step3(ctx context.Context, draft models.Draft, in models.PhotoInput) (models.Draft, []string)
	Step4(ctx context.Context, draft models.Draft, in models.PetsInput) (models.Draft, []string)

	// Step5 commits the accumulated draft: it re-checks username
	// uniqueness, assembles the full record with the registration
	// timestamp, and persists it. On success the returned draft is empty
	// and the record is the persisted account; on failure the original
	// draft is returned with the messages to display.
	Step5(ctx context.Context, draft models.Draft) (models.UserRecord, models.Draft, []string)
}

// AuthService authenticates existing members.
type AuthService interface {
	// Login verifies the credentials and returns the matching record.
	// Unknown usernames and wrong passwords are indistinguishable to the
	// caller: both yield ErrInvalidCredentials.
	Login(ctx context.Context, in models.LoginInput) (models.UserRecord, error)
}

// ProfileService serves the member directory and the profile edit surface.
type ProfileService interface {
	Member(ctx context.Context, username string) (models.MemberView, error)
	ListMembers(ctx context.Context) ([]models.MemberView, error)

	// Update applies a profile edit: personal fields, optional password
	// change, optional photo replacement, and a full replace of the pet
	// list. Returns the collected user-facing errors; the record is only
	// written when there are none.
	Update(ctx context.Context, username string, in models.ProfileUpdateInput) ([]string, error)

	// Delete removes the account and cascades deletion of its profile
	// photo and every pet photo it owned.
	Delete(ctx context.Context, username string) error
}

// MediaStore is the slice of the media manager the services depend on.
type MediaStore interface {
	Store(upload *models.FileUpload, category string) (string, error)
	Remove(filename, category string) bool
}
