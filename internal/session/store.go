// SPDX-License-Identifier: Apache-2.0

// Package session holds all server-side per-visitor state: the onboarding
// draft, the authenticated identity, the CSRF token, and one-shot flash
// messages. Sessions live in memory, are keyed by an opaque generated ID,
// and expire after a configurable idle TTL.
package session

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/petlovers/community-server/internal/logger"
	"github.com/petlovers/community-server/models"
)

// State is a snapshot of one visitor's session. Mutations go back through
// the [Store] by ID; handlers never share live session memory.
type State struct {
	// ID is the opaque session identifier carried (signed) by the cookie.
	ID string

	// Username is the authenticated identity, empty for anonymous visitors.
	Username string

	// CSRFToken is the per-session token verified on every mutating request.
	CSRFToken string

	// Draft is the onboarding staging area. The zero Draft is the empty
	// draft a visitor has when entering the wizard for the first time.
	Draft models.Draft

	// Flash is the pending one-shot notice, nil when none is set.
	Flash *models.FlashMessage
}

type entry struct {
	state     State
	expiresAt time.Time
}

// Store is the in-memory session table. It is safe for concurrent use.
// Each session's idle TTL is refreshed on every lookup; an expired
// session reads as absent. A background sweeper reclaims expired entries
// until [Store.Close] is called.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry

	ttl    time.Duration
	done   chan struct{}
	once   sync.Once
	logger *logger.Logger
}

// NewStore constructs a session [Store] with the given idle TTL and
// starts its background sweeper.
func NewStore(ttl time.Duration, logger *logger.Logger) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		done:     make(chan struct{}),
		logger:   logger,
	}

	go s.sweep()

	return s
}

// New creates a fresh anonymous session with a generated ID and CSRF
// token and returns its snapshot.
func (s *Store) New() State {
	state := State{
		ID:        newID(),
		CSRFToken: newID(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.ID] = &entry{state: state, expiresAt: time.Now().Add(s.ttl)}

	return state
}

// Get returns a snapshot of the session with this ID and refreshes its
// TTL. An unknown or expired ID reads as absent.
func (s *Store) Get(id string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(id)
	if !ok {
		return State{}, false
	}

	e.expiresAt = time.Now().Add(s.ttl)
	return e.state, true
}

// Save writes a modified snapshot back. Saving an expired or destroyed
// session is a no-op: the visitor will get a fresh session on the next
// request instead of resurrecting stale state.
func (s *Store) Save(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(state.ID)
	if !ok {
		return
	}

	e.state = state
	e.expiresAt = time.Now().Add(s.ttl)
}

// Regenerate swaps the session onto a new ID, keeping its state.
// Called on login to prevent session fixation. Returns the new snapshot.
func (s *Store) Regenerate(id string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(id)
	if !ok {
		return State{}, false
	}

	delete(s.sessions, id)
	e.state.ID = newID()
	s.sessions[e.state.ID] = e
	e.expiresAt = time.Now().Add(s.ttl)

	return e.state, true
}

// Destroy removes the session entirely.
func (s *Store) Destroy(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// VerifyCSRF compares the submitted token against the session's token in
// constant time.
func (s *Store) VerifyCSRF(id, token string) bool {
	state, ok := s.Get(id)
	if !ok || state.CSRFToken == "" || token == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(state.CSRFToken), []byte(token)) == 1
}

// TakeFlash returns the pending flash message and clears it, or nil when
// none is set.
func (s *Store) TakeFlash(id string) *models.FlashMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(id)
	if !ok {
		return nil
	}

	flash := e.state.Flash
	e.state.Flash = nil
	return flash
}

// Close stops the background sweeper. Safe to call more than once.
func (s *Store) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}

// live returns the entry for id if it exists and has not expired.
// Must be called with the mutex held.
func (s *Store) live(id string) (*entry, bool) {
	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		delete(s.sessions, id)
		return nil, false
	}

	return e, true
}

// sweep periodically drops expired sessions so abandoned wizard drafts do
// not accumulate.
func (s *Store) sweep() {
	interval := s.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			swept := 0
			for id, e := range s.sessions {
				if now.After(e.expiresAt) {
					delete(s.sessions, id)
					swept++
				}
			}
			s.mu.Unlock()

			if swept > 0 {
				s.logger.Debug().Int("swept", swept).Msg("expired sessions reclaimed")
			}
		}
	}
}

func newID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
