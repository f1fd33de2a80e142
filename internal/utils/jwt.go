package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/petlovers/community-server/models"
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT wrapping the given
// opaque session ID.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the session ID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty
// or zero.
func GenerateSessionToken(issuer, sessionID string, tokenDuration time.Duration, signKey string) (models.SessionToken, error) {
	if issuer == "" || sessionID == "" || tokenDuration == 0 || signKey == "" {
		return models.SessionToken{}, errors.New("invalid params for generating session token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   sessionID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return models.SessionToken{Token: token, SignedString: tokenString, SessionID: sessionID}, nil
}

// ValidateSessionToken validates the given token string and extracts the
// session ID from its subject claim.
//
// Validation includes signature verification with the provided sign key,
// an issuer claim check, and the expiration check. Any failure is
// returned as a wrapped error; callers normally respond by issuing a
// fresh anonymous session rather than surfacing the error.
func ValidateSessionToken(tokenString, tokenSignKey, tokenIssuer string) (models.SessionToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionToken{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error occurred validating and parsing session token: %w", err)
	}

	sessionID, err := token.Claims.GetSubject()
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error occurred during getting subject from session token: %w", err)
	}
	if sessionID == "" {
		return models.SessionToken{}, errors.New("empty subject error")
	}

	return models.SessionToken{Token: token, SessionID: sessionID}, nil
}
