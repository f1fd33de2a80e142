// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/petlovers/community-server/internal/logger"
	"github.com/petlovers/community-server/models"
)

// userRepository is the flat-file implementation of [UserRepository].
// The whole table lives in one delimited text file with a header row;
// every mutation reads the complete table, applies the change in memory,
// and rewrites the file through a temp file and a rename.
//
// A single mutex guards every operation, enforcing the single-writer
// discipline the format requires. All methods obtain a context-scoped
// logger via [logger.FromContext] for request-level tracing.
type userRepository struct {
	path   string
	mu     sync.Mutex
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] persisting to the given
// table file path. The file and its directory are created lazily on the
// first write.
func NewUserRepository(path string, logger *logger.Logger) UserRepository {
	logger.Debug().Str("path", path).Msg("creating user repository")
	return &userRepository{
		path:   path,
		logger: logger,
	}
}

// ListAll loads the entire table into a mapping keyed by username.
// A missing table file is not an error: it reads as the empty mapping.
func (r *userRepository) ListAll(ctx context.Context) (map[string]models.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.readAll(ctx)
}

// Get returns a single record by username or [ErrNoUserWasFound].
func (r *userRepository) Get(ctx context.Context, username string) (models.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll(ctx)
	if err != nil {
		return models.UserRecord{}, err
	}

	user, ok := users[username]
	if !ok {
		return models.UserRecord{}, ErrNoUserWasFound
	}

	return user, nil
}

// Create appends a new record and rewrites the table.
//
// The uniqueness check runs inside the same mutex hold as the rewrite, so
// it acts as a write-time constraint: two racing registrations for the
// same username can never both succeed, and the loser gets
// [ErrUsernameTaken] with the table left unchanged.
func (r *userRepository) Create(ctx context.Context, record models.UserRecord) error {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	if _, ok := users[record.Username]; ok {
		log.Warn().Str("username", record.Username).Msg("username already taken")
		return ErrUsernameTaken
	}

	users[record.Username] = record
	return r.writeAll(ctx, users)
}

// Update merges the non-nil fields of update into the stored record and
// rewrites the table. Username is immutable by construction: the patch
// carries no username field and the record keeps its map key.
//
// Returns [ErrNoUserWasFound] without writing when the record is absent.
func (r *userRepository) Update(ctx context.Context, username string, update UserUpdate) error {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	user, ok := users[username]
	if !ok {
		log.Warn().Str("username", username).Msg("update target not found")
		return ErrNoUserWasFound
	}

	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.ProfilePhoto != nil {
		user.ProfilePhoto = *update.ProfilePhoto
	}
	if update.Pets != nil {
		user.Pets = *update.Pets
	}

	users[username] = user
	return r.writeAll(ctx, users)
}

// Delete removes the record and rewrites the table, or returns
// [ErrNoUserWasFound] without writing.
func (r *userRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll(ctx)
	if err != nil {
		return err
	}

	if _, ok := users[username]; !ok {
		return ErrNoUserWasFound
	}

	delete(users, username)
	return r.writeAll(ctx, users)
}

// Exists reports whether a record with this username is present.
func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll(ctx)
	if err != nil {
		return false, err
	}

	_, ok := users[username]
	return ok, nil
}

// readAll parses the table file. The header row is read and discarded;
// rows with fewer than eight fields are skipped as a defensive tolerance
// for malformed lines. Must be called with the mutex held.
func (r *userRepository) readAll(ctx context.Context) (map[string]models.UserRecord, error) {
	log := logger.FromContext(ctx)

	file, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]models.UserRecord{}, nil
		}
		log.Err(err).Str("path", r.path).Msg("error opening users table")
		return nil, fmt.Errorf("%w: %w", ErrReadingTable, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]models.UserRecord{}, nil
		}
		log.Err(err).Str("path", r.path).Msg("error reading table header")
		return nil, fmt.Errorf("%w: %w", ErrReadingTable, err)
	}

	users := make(map[string]models.UserRecord)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Err(err).Str("path", r.path).Msg("error reading table row")
			return nil, fmt.Errorf("%w: %w", ErrReadingTable, err)
		}

		if len(row) < 8 {
			log.Warn().Int("fields", len(row)).Msg("skipping malformed table row")
			continue
		}

		record := rowToRecord(row)
		users[record.Username] = record
	}

	return users, nil
}

// writeAll rewrites the complete table. The new content goes to a temp
// file in the table's directory and replaces the live file with a rename,
// so a crash mid-write never leaves a half-written table. Rows are
// written in username order to keep rewrites deterministic.
// Must be called with the mutex held.
func (r *userRepository) writeAll(ctx context.Context, users map[string]models.UserRecord) error {
	log := logger.FromContext(ctx)

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Err(err).Str("dir", dir).Msg("error creating data directory")
		return fmt.Errorf("%w: %w", ErrWritingTable, err)
	}

	tmp, err := os.CreateTemp(dir, "users-*.tmp")
	if err != nil {
		log.Err(err).Str("dir", dir).Msg("error creating temp table file")
		return fmt.Errorf("%w: %w", ErrWritingTable, err)
	}
	tmpPath := tmp.Name()

	writer := csv.NewWriter(tmp)

	writeErr := writer.Write(tableHeader)
	if writeErr == nil {
		usernames := make([]string, 0, len(users))
		for username := range users {
			usernames = append(usernames, username)
		}
		sort.Strings(usernames)

		for _, username := range usernames {
			row, err := recordToRow(users[username])
			if err != nil {
				writeErr = err
				break
			}
			if err := writer.Write(row); err != nil {
				writeErr = err
				break
			}
		}
	}

	if writeErr == nil {
		writer.Flush()
		writeErr = writer.Error()
	}

	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}

	if writeErr != nil {
		os.Remove(tmpPath)
		log.Err(writeErr).Str("path", r.path).Msg("error rewriting users table")
		return fmt.Errorf("%w: %w", ErrWritingTable, writeErr)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		log.Err(err).Str("path", r.path).Msg("error replacing users table")
		return fmt.Errorf("%w: %w", ErrWritingTable, err)
	}

	return nil
}
