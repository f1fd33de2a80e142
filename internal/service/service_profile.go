package service

import (
	"context"
	"sort"
	"strings"

	"github.com/petlovers/community-server/internal/logger"
	"github.com/petlovers/community-server/internal/media"
	"github.com/petlovers/community-server/internal/store"
	"github.com/petlovers/community-server/models"
	"golang.org/x/crypto/bcrypt"
)

// profileService is the concrete implementation of [ProfileService].
type profileService struct {
	users store.UserRepository
	files MediaStore

	bcryptCost int

	logger *logger.Logger
}

// NewProfileService constructs a [ProfileService] wired to the given user
// repository and media store.
func NewProfileService(users store.UserRepository, files MediaStore, bcryptCost int, logger *logger.Logger) ProfileService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &profileService{
		users:      users,
		files:      files,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Member returns the directory view of a single member.
func (p *profileService) Member(ctx context.Context, username string) (models.MemberView, error) {
	user, err := p.users.Get(ctx, username)
	if err != nil {
		return models.MemberView{}, err
	}

	return models.MemberViewOf(user), nil
}

// ListMembers returns every member ordered by username, credential
// material stripped.
func (p *profileService) ListMembers(ctx context.Context) ([]models.MemberView, error) {
	users, err := p.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	members := make([]models.MemberView, 0, len(users))
	for _, user := range users {
		members = append(members, models.MemberViewOf(user))
	}

	sort.Slice(members, func(i, j int) bool {
		return members[i].Username < members[j].Username
	})

	return members, nil
}

// Update applies a profile edit. Field validation runs first and is
// collected, not fail-fast; uploads are only attempted once the fields
// are valid so a rejected form never leaves freshly stored files orphaned.
// The username cannot be changed: it is the record's identity.
func (p *profileService) Update(ctx context.Context, username string, in models.ProfileUpdateInput) ([]string, error) {
	log := logger.FromContext(ctx)

	user, err := p.users.Get(ctx, username)
	if err != nil {
		return nil, err
	}

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

	if in.NewPassword != "" {
		if len(in.NewPassword) < minPasswordLength {
			errs = append(errs, MsgNewPasswordLength)
		} else if in.NewPassword != in.ConfirmPassword {
			errs = append(errs, MsgPasswordsDiffer)
		}
	}

	if len(errs) > 0 {
		return errs, nil
	}

	profilePhoto := user.ProfilePhoto
	if in.Photo != nil {
		stored, err := p.files.Store(in.Photo, media.CategoryProfiles)
		if err != nil {
			log.Err(err).Msg("profile photo upload rejected")
			errs = append(errs, MsgUploadFailed)
		} else {
			if profilePhoto != "" {
				p.files.Remove(profilePhoto, media.CategoryProfiles)
			}
			profilePhoto = stored
		}
	}

	pets, petErrs := processPets(ctx, p.files, user.Pets, in.Pets)
	errs = append(errs, petErrs...)

	if len(errs) > 0 {
		return errs, nil
	}

	update := store.UserUpdate{
		FullName:     &fullName,
		Email:        &email,
		Phone:        &phone,
		ProfilePhoto: &profilePhoto,
		Pets:         &pets,
	}

	if in.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), p.bcryptCost)
		if err != nil {
			log.Err(err).Msg("password hashing failed")
			return nil, err
		}
		hashed := string(hash)
		update.PasswordHash = &hashed
	}

	if err := p.users.Update(ctx, username, update); err != nil {
		log.Err(err).Str("username", username).Msg("profile update failed")
		return []string{MsgProfileSaveFailed}, nil
	}

	log.Info().Str("username", username).Msg("profile updated")

	return nil, nil
}

// Delete removes the account record and every stored file it owned: the
// profile photo and each pet photo. File deletion happens before the
// record delete so a crash in between can at worst leave a record whose
// photos render as placeholders, never orphaned files.
func (p *profileService) Delete(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	user, err := p.users.Get(ctx, username)
	if err != nil {
		return err
	}

	if user.ProfilePhoto != "" {
		p.files.Remove(user.ProfilePhoto, media.CategoryProfiles)
	}
	for _, pet := range user.Pets {
		if pet.Photo != "" {
			p.files.Remove(pet.Photo, media.CategoryPets)
		}
	}

	if err := p.users.Delete(ctx, username); err != nil {
		log.Err(err).Str("username", username).Msg("account deletion failed")
		return err
	}

	log.Info().Str("username", username).Msg("account deleted")

	return nil
}
