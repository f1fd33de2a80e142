// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/petlovers/community-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	app := newTestApp(t)
	app.seedMember("jane42", "hunter2hunter2")

	token := app.csrf("/api/auth/login")
	anonymous := app.cookie.Value

	rec := app.postForm("/api/auth/login", url.Values{
		"csrf_token": {token},
		"username":   {"jane42"},
		"password":   {"hunter2hunter2"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, membersRedirect, rec.Header().Get("Location"))
	assert.NotEqual(t, anonymous, app.cookie.Value, "login must rotate the session cookie")

	// the flash rides on the next rendered page
	members := app.get("/api/members")
	require.Equal(t, http.StatusOK, members.Code)

	var page models.MembersPage
	require.NoError(t, json.Unmarshal(members.Body.Bytes(), &page))
	require.NotNil(t, page.Flash)
	assert.Equal(t, "Welcome back, jane42!", page.Flash.Message)
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.seedMember("jane42", "hunter2hunter2")

	token := app.csrf("/api/auth/login")
	rec := app.postForm("/api/auth/login", url.Values{
		"csrf_token": {token},
		"username":   {"jane42"},
		"password":   {"wrong"},
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decodeState(t, rec).Errors, msgLoginFailed)
}

func TestLogin_EmptyFields(t *testing.T) {
	app := newTestApp(t)

	token := app.csrf("/api/auth/login")
	rec := app.postForm("/api/auth/login", url.Values{
		"csrf_token": {token},
		"username":   {""},
		"password":   {""},
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeState(t, rec).Errors, msgCredentialsRequired)
}

func TestLogin_RejectsMissingCSRF(t *testing.T) {
	app := newTestApp(t)
	app.seedMember("jane42", "hunter2hunter2")
	app.csrf("/api/auth/login") // establish a session

	rec := app.postForm("/api/auth/login", url.Values{
		"username": {"jane42"},
		"password": {"hunter2hunter2"},
	})

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decodeState(t, rec).Errors, msgInvalidCSRF)
}

func TestLoginPage_RedirectsMembers(t *testing.T) {
	app := newTestApp(t)
	app.seedMember("jane42", "hunter2hunter2")
	app.login("jane42", "hunter2hunter2")

	rec := app.get("/api/auth/login")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, membersRedirect, rec.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)
	app.seedMember("jane42", "hunter2hunter2")
	app.login("jane42", "hunter2hunter2")

	token := app.csrf("/api/profile")
	rec := app.postForm("/api/auth/logout", url.Values{"csrf_token": {token}})

	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeState(t, rec)
	assert.Equal(t, loginRedirect, state.Redirect)
	require.NotNil(t, state.Flash)
	assert.Equal(t, msgLoggedOut, state.Flash.Message)

	// the destroyed session no longer grants access
	members := app.get("/api/members")
	assert.Equal(t, http.StatusUnauthorized, members.Code)
}

func TestMembers_RequiresLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/api/members")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	state := decodeState(t, rec)
	assert.Equal(t, loginRedirect, state.Redirect)
	assert.Contains(t, state.Errors, msgLoginRequired)
}
