package service

import (
	"context"
	"errors"

	"github.com/petlovers/community-server/internal/logger"
	"github.com/petlovers/community-server/internal/store"
	"github.com/petlovers/community-server/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of [AuthService]. It
// verifies credentials against the user repository using bcrypt.
type authService struct {
	users  store.UserRepository
	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given user
// repository. The returned service is safe for concurrent use; all state
// is read-only after construction.
func NewAuthService(users store.UserRepository, logger *logger.Logger) AuthService {
	return &authService{
		users:  users,
		logger: logger,
	}
}

// Login authenticates an existing member.
//
// An unknown username and a wrong password both return
// [ErrInvalidCredentials] so the response does not reveal which part was
// wrong. Empty input short-circuits with [ErrInvalidDataProvided].
func (a *authService) Login(ctx context.Context, in models.LoginInput) (models.UserRecord, error) {
	log := logger.FromContext(ctx)

	if in.Username == "" || in.Password == "" {
		return models.UserRecord{}, ErrInvalidDataProvided
	}

	user, err := a.users.Get(ctx, in.Username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.UserRecord{}, ErrInvalidCredentials
		}

		log.Err(err).Msg("user lookup failed during login")
		return models.UserRecord{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		log.Warn().Str("username", in.Username).Msg("wrong password")
		return models.UserRecord{}, ErrInvalidCredentials
	}

	return user, nil
}
