package config

import "errors"

var (
	// ErrMissingSessionSignKey is returned when no source supplied a
	// session cookie signing key. The server refuses to start with
	// unsigned session cookies.
	ErrMissingSessionSignKey = errors.New("session sign key is required")
)
