// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/petlovers/community-server/internal/config"
	"github.com/petlovers/community-server/internal/logger"
	"github.com/petlovers/community-server/internal/service"
	"github.com/petlovers/community-server/internal/session"
	"github.com/petlovers/community-server/internal/store"
	"github.com/petlovers/community-server/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ─────────────────────────────────────────────
// Mock MediaStore
// ─────────────────────────────────────────────

// mockMediaStore implements service.MediaStore so handler tests exercise
// the full stack without touching real image validation.
type mockMediaStore struct {
	stored  []string
	removed []string
}

func (m *mockMediaStore) Store(upload *models.FileUpload, category string) (string, error) {
	name := "img_stored_" + upload.Name
	m.stored = append(m.stored, name)
	return name, nil
}

func (m *mockMediaStore) Remove(filename, category string) bool {
	m.removed = append(m.removed, filename)
	return true
}

// ─────────────────────────────────────────────
// Test application
// ─────────────────────────────────────────────

// testApp wires a Handler to a real session store and a temp-file user
// repository, and drives it through the chi router like a browser with a
// single cookie.
type testApp struct {
	t *testing.T

	router   *chi.Mux
	sessions *session.Store
	users    store.UserRepository
	files    *mockMediaStore

	cookie *http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := config.App{
		SessionSignKey: "test-sign-key",
		SessionIssuer:  "pet-community",
		SessionTTL:     time.Minute,
		BcryptCost:     bcrypt.MinCost,
	}

	users := store.NewUserRepository(filepath.Join(t.TempDir(), "users.csv"), logger.Nop())
	files := &mockMediaStore{}
	services := service.NewServices(users, files, cfg, logger.Nop())

	sessions := session.NewStore(cfg.SessionTTL, logger.Nop())
	t.Cleanup(sessions.Close)

	h := NewHandler(services, sessions, cfg, t.TempDir(), logger.Nop())

	return &testApp{
		t:        t,
		router:   h.Init(),
		sessions: sessions,
		users:    users,
		files:    files,
	}
}

// do sends the request with the remembered session cookie attached and
// captures any replacement cookie from the response.
func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	a.t.Helper()

	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			if c.MaxAge < 0 || c.Value == "" {
				a.cookie = nil
			} else {
				a.cookie = &http.Cookie{Name: c.Name, Value: c.Value}
			}
		}
	}

	return rec
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	a.t.Helper()
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

// csrf fetches a token by rendering the given GET endpoint.
func (a *testApp) csrf(path string) string {
	a.t.Helper()

	rec := a.get(path)
	require.Equal(a.t, http.StatusOK, rec.Code, "expected %s to render", path)

	var state models.StepState
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.NotEmpty(a.t, state.CSRFToken)
	return state.CSRFToken
}

// seedMember creates an account directly in the repository.
func (a *testApp) seedMember(username, password string) {
	a.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(a.t, err)
	require.NoError(a.t, a.users.Create(context.Background(), models.UserRecord{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		Pets:         []models.PetRecord{},
	}))
}

// login walks the login flow and leaves the app holding the member's
// session cookie.
func (a *testApp) login(username, password string) {
	a.t.Helper()

	token := a.csrf("/api/auth/login")
	rec := a.postForm("/api/auth/login", url.Values{
		"csrf_token": {token},
		"username":   {username},
		"password":   {password},
	})
	require.Equal(a.t, http.StatusSeeOther, rec.Code, "login should succeed: %s", rec.Body.String())
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) models.StepState {
	t.Helper()
	var state models.StepState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	return state
}
