package http

import (
	"context"
	"net/http"

	"github.com/petlovers/community-server/internal/logger"
	"github.com/petlovers/community-server/internal/session"
	"github.com/petlovers/community-server/internal/utils"
)

type ctxKey int

const sessionCtxKey ctxKey = iota

// withSession resolves the visitor's session from the signed cookie and
// attaches its snapshot to the request context. A missing, tampered, or
// expired cookie silently gets a fresh anonymous session.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, ok := h.lookupSession(r)
		if !ok {
			state = h.sessions.New()
			h.setSessionCookie(w, state.ID)
		}

		ctx := context.WithValue(r.Context(), sessionCtxKey, state)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// session returns the snapshot attached by withSession. Handlers mutate
// the snapshot and write it back through the store; they never share live
// session memory.
func (h *Handler) session(r *http.Request) session.State {
	state, _ := r.Context().Value(sessionCtxKey).(session.State)
	return state
}

func (h *Handler) lookupSession(r *http.Request) (session.State, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return session.State{}, false
	}

	token, err := utils.ValidateSessionToken(cookie.Value, h.signKey, h.issuer)
	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("rejecting session cookie")
		return session.State{}, false
	}

	return h.sessions.Get(token.SessionID)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	token, err := utils.GenerateSessionToken(h.issuer, sessionID, sessionTokenLifetime, h.signKey)
	if err != nil {
		h.logger.Err(err).Msg("signing session cookie")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
