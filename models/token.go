package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionToken wraps the signed JWT carried by the session cookie.
//
// The cookie value is a compact JWS whose subject claim is the opaque
// server-side session ID; signing makes the cookie tamper-evident while
// all real state stays in the in-memory session store.
type SessionToken struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard claim set (sub, exp, iat, iss).
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation ready to be set as
	// the cookie value.
	SignedString string `json:"-"`

	// SessionID is the opaque session identifier extracted from the
	// subject claim.
	SessionID string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *SessionToken) String() string {
	return t.SignedString
}
