package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameTaken is returned when an attempt to create a new user
	// fails because a record with the same username already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrNoUserWasFound is returned when a lookup, update or delete targets
	// a username that is not present in the table.
	ErrNoUserWasFound = errors.New("no user was found")
)

// Low-level table file errors. These wrap I/O failures of the whole-file
// read or rewrite before any domain logic can be applied.
var (
	// ErrReadingTable is returned when the users table file exists but
	// cannot be opened or parsed.
	ErrReadingTable = errors.New("error reading users table")

	// ErrWritingTable is returned when rewriting the users table file
	// fails. No partial state is left behind: the rewrite goes through a
	// temp file and a rename, so the previous table survives intact.
	ErrWritingTable = errors.New("error writing users table")
)
