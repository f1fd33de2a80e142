// Package http exposes the community server over HTTP: the login and
// logout endpoints, the five-step registration wizard, the member
// directory, the profile edit surface, and static serving of uploaded
// images. Responses are JSON envelopes; redirects use 303 See Other with
// a Location header so form posts never get replayed.
package http

import (
	"time"

	"github.com/petlovers/community-server/internal/config"
	"github.com/petlovers/community-server/internal/logger"
	"github.com/petlovers/community-server/internal/service"
	"github.com/petlovers/community-server/internal/session"
)

const (
	// sessionCookieName is the cookie carrying the signed session token.
	sessionCookieName = "pet_community"

	// sessionTokenLifetime bounds the signed cookie itself. The effective
	// session lifetime is the store's idle TTL; the token only has to
	// outlive it.
	sessionTokenLifetime = 7 * 24 * time.Hour

	// maxMultipartMemory is how much of a multipart body is held in memory
	// before spilling to temp files.
	maxMultipartMemory = 8 << 20
)

type Handler struct {
	services *service.Services
	sessions *session.Store

	signKey    string
	issuer     string
	uploadsDir string

	logger *logger.Logger
}

func NewHandler(services *service.Services, sessions *session.Store, cfg config.App, uploadsDir string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		sessions:   sessions,
		signKey:    cfg.SessionSignKey,
		issuer:     cfg.SessionIssuer,
		uploadsDir: uploadsDir,
		logger:     logger,
	}
}
