package service

import (
	"github.com/petlovers/community-server/internal/config"
	"github.com/petlovers/community-server/internal/logger"
	"github.com/petlovers/community-server/internal/store"
)

type Services struct {
	AuthService       AuthService
	OnboardingService OnboardingService
	ProfileService    ProfileService
}

func NewServices(users store.UserRepository, files MediaStore, cfg config.App, logger *logger.Logger) *Services {
	return &Services{
		AuthService:       NewAuthService(users, logger),
		OnboardingService: NewOnboardingService(users, files, cfg.BcryptCost, logger),
		ProfileService:    NewProfileService(users, files, cfg.BcryptCost, logger),
	}
}
