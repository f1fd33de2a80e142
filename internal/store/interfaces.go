package store

import (
	"context"

	"github.com/petlovers/community-server/models"
)

// UserRepository is the durable table of user records keyed by username.
//
// Every mutation is read-modify-write-whole-file: the complete table is
// loaded, changed in memory, and rewritten. Implementations serialize
// writers so the single-writer assumption of the flat-file format is
// enforced rather than merely assumed.
type UserRepository interface {
	// ListAll loads the entire table. A missing table file reads as the
	// empty mapping.
	ListAll(ctx context.Context) (map[string]models.UserRecord, error)

	// Get returns the record for username or ErrNoUserWasFound.
	Get(ctx context.Context, username string) (models.UserRecord, error)

	// Create appends a new record and rewrites the table. Uniqueness is
	// checked inside the same critical section as the rewrite, so a
	// duplicate username always fails with ErrUsernameTaken and leaves
	// the table unchanged.
	Create(ctx context.Context, record models.UserRecord) error

	// Update merges the non-nil fields of update into the existing
	// record. The username is immutable: it can never be changed through
	// an update. Returns ErrNoUserWasFound without writing when no such
	// record exists.
	Update(ctx context.Context, username string, update UserUpdate) error

	// Delete removes the record or returns ErrNoUserWasFound.
	Delete(ctx context.Context, username string) error

	// Exists reports whether a record with this username is present.
	Exists(ctx context.Context, username string) (bool, error)
}

// UserUpdate is a partial-field patch for Update. Nil fields are left
// untouched; non-nil fields replace the stored value, which allows a
// field to be cleared by pointing at an empty value.
type UserUpdate struct {
	PasswordHash *string
	FullName     *string
	Email        *string
	Phone        *string
	ProfilePhoto *string
	Pets         *[]models.PetRecord
}
