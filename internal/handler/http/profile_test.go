// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/petlovers/community-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileGet(t *testing.T) {
	app := newTestApp(t)
	app.seedMember("jane42", "hunter2hunter2")
	app.login("jane42", "hunter2hunter2")

	rec := app.get("/api/profile")
	require.Equal(t, http.StatusOK, rec.Code)

	var page models.ProfilePage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, "jane42", page.Profile.Username)
	assert.Equal(t, "Jane Doe", page.Profile.FullName)
	assert.NotEmpty(t, page.CSRFToken)
	assert.NotContains(t, rec.Body.String(), "hunter2", "credential material must never render")
}

func TestProfileUpdate_Success(t *testing.T) {
	app := newTestApp(t)
	app.seedMember("jane42", "hunter2hunter2")
	app.login("jane42", "hunter2hunter2")

	token := app.csrf("/api/profile")
	rec := app.postForm("/api/profile", url.Values{
		"csrf_token":  {token},
		"full_name":   {"Jane A. Doe"},
		"email":       {"jane.new@example.com"},
		"phone":       {"+1 555 7654321"},
		"pet_name[]":  {"Rex"},
		"pet_breed[]": {"Beagle"},
		"pet_age[]":   {"4"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, profileRedirect, rec.Header().Get("Location"))

	record, err := app.users.Get(context.Background(), "jane42")
	require.NoError(t, err)
	assert.Equal(t, "Jane A. Doe", record.FullName)
	require.Len(t, record.Pets, 1)
	assert.Equal(t, 4, record.Pets[0].Age)

	// the success flash renders on the next profile view
	next := app.get("/api/profile")
	var page models.ProfilePage
	require.NoError(t, json.Unmarshal(next.Body.Bytes(), &page))
	require.NotNil(t, page.Flash)
	assert.Equal(t, msgProfileUpdated, page.Flash.Message)
}

func TestProfileUpdate_ValidationErrors(t *testing.T) {
	app := newTestApp(t)
	app.seedMember("jane42", "hunter2hunter2")
	app.login("jane42", "hunter2hunter2")

	token := app.csrf("/api/profile")
	rec := app.postForm("/api/profile", url.Values{
		"csrf_token": {token},
		"full_name":  {""},
		"email":      {"broken"},
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var page models.ProfilePage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.NotEmpty(t, page.Errors)
	assert.Equal(t, "jane42", page.Profile.Username, "the form re-renders with the stored record")

	record, err := app.users.Get(context.Background(), "jane42")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", record.FullName, "a rejected form must not write")
}

func TestProfileDelete(t *testing.T) {
	app := newTestApp(t)
	app.seedMember("jane42", "hunter2hunter2")
	app.login("jane42", "hunter2hunter2")

	token := app.csrf("/api/profile")
	rec := app.postForm("/api/profile/delete", url.Values{"csrf_token": {token}})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	state := decodeState(t, rec)
	assert.Equal(t, loginRedirect, state.Redirect)
	require.NotNil(t, state.Flash)
	assert.Equal(t, msgAccountDeleted, state.Flash.Message)

	// the account is gone and the session with it
	_, err := app.users.Get(context.Background(), "jane42")
	assert.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, app.get("/api/members").Code)
}

func TestProfile_RequiresLogin(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusUnauthorized, app.get("/api/profile").Code)

	rec := app.postForm("/api/profile", url.Values{"full_name": {"x"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMembersList(t *testing.T) {
	app := newTestApp(t)
	app.seedMember("zoe", "hunter2hunter2")
	app.seedMember("adam", "hunter2hunter2")
	app.seedMember("jane42", "hunter2hunter2")
	app.login("jane42", "hunter2hunter2")

	rec := app.get("/api/members")
	require.Equal(t, http.StatusOK, rec.Code)

	var page models.MembersPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Members, 3)
	assert.Equal(t, "adam", page.Members[0].Username)
	assert.Equal(t, "jane42", page.Members[1].Username)
	assert.Equal(t, "zoe", page.Members[2].Username)
	assert.NotContains(t, rec.Body.String(), "password")
}
