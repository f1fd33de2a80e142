// SPDX-License-Identifier: Apache-2.0

package http

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postMultipart submits a wizard form with file parts attached.
func (a *testApp) postMultipart(path string, fields map[string]string, fileField string, filenames ...string) *httptest.ResponseRecorder {
	a.t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for name, value := range fields {
		require.NoError(a.t, writer.WriteField(name, value))
	}
	for _, filename := range filenames {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(a.t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(a.t, err)
	}
	require.NoError(a.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return a.do(req)
}

func TestRegisterStart_ResetsDraftAndRedirects(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/api/register/start")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/api/register/step/1", rec.Header().Get("Location"))
}

func TestStepGet_GuardRedirectsToFirstIncompleteStep(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/api/register/step/3")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/api/register/step/1", rec.Header().Get("Location"))
}

func TestStepGet_InvalidStepNumber(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusNotFound, app.get("/api/register/step/9").Code)
	assert.Equal(t, http.StatusNotFound, app.get("/api/register/step/zero").Code)
}

func TestStepPost_ValidationErrorsKeepTheStep(t *testing.T) {
	app := newTestApp(t)

	token := app.csrf("/api/register/step/1")
	rec := app.postForm("/api/register/step/1", url.Values{
		"csrf_token":       {token},
		"username":         {"x!"},
		"password":         {"short"},
		"confirm_password": {"different"},
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	state := decodeState(t, rec)
	assert.Equal(t, 1, state.Step)
	assert.NotEmpty(t, state.Errors)

	// the draft did not advance
	guard := app.get("/api/register/step/2")
	assert.Equal(t, http.StatusSeeOther, guard.Code)
}

func TestStepPost_RejectsMissingCSRF(t *testing.T) {
	app := newTestApp(t)
	app.csrf("/api/register/step/1")

	rec := app.postForm("/api/register/step/1", url.Values{
		"username":         {"jane42"},
		"password":         {"hunter2hunter2"},
		"confirm_password": {"hunter2hunter2"},
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWizard_FullWalk(t *testing.T) {
	app := newTestApp(t)

	start := app.get("/api/register/start")
	require.Equal(t, http.StatusSeeOther, start.Code)

	token := app.csrf("/api/register/step/1")

	step1 := app.postForm("/api/register/step/1", url.Values{
		"csrf_token":       {token},
		"username":         {"jane42"},
		"password":         {"hunter2hunter2"},
		"confirm_password": {"hunter2hunter2"},
	})
	require.Equal(t, http.StatusSeeOther, step1.Code, step1.Body.String())
	require.Equal(t, "/api/register/step/2", step1.Header().Get("Location"))

	step2 := app.postForm("/api/register/step/2", url.Values{
		"csrf_token": {token},
		"full_name":  {"Jane Doe"},
		"email":      {"jane@example.com"},
		"phone":      {"+1 (555) 123-4567"},
	})
	require.Equal(t, http.StatusSeeOther, step2.Code, step2.Body.String())
	require.Equal(t, "/api/register/step/3", step2.Header().Get("Location"))

	step3 := app.postMultipart("/api/register/step/3", map[string]string{
		"csrf_token": token,
	}, "profile_photo", "me.jpg")
	require.Equal(t, http.StatusSeeOther, step3.Code, step3.Body.String())
	require.Equal(t, "/api/register/step/4", step3.Header().Get("Location"))

	step4 := app.postForm("/api/register/step/4", url.Values{
		"csrf_token":  {token},
		"pet_name[]":  {"Rex", "", "Mimi"},
		"pet_breed[]": {"Beagle", "", "Siamese"},
		"pet_age[]":   {"3", "", "2"},
	})
	require.Equal(t, http.StatusSeeOther, step4.Code, step4.Body.String())
	require.Equal(t, "/api/register/step/5", step4.Header().Get("Location"))

	summary := app.get("/api/register/step/5")
	require.Equal(t, http.StatusOK, summary.Code)
	state := decodeState(t, summary)
	assert.Equal(t, 5, state.Step)
	assert.Equal(t, "jane42", state.Values["username"])
	assert.Equal(t, "img_stored_me.jpg", state.Values["profile_photo"])

	step5 := app.postForm("/api/register/step/5", url.Values{"csrf_token": {token}})
	require.Equal(t, http.StatusSeeOther, step5.Code, step5.Body.String())
	require.Equal(t, loginRedirect, step5.Header().Get("Location"))

	// the committed account is live
	exists, err := app.users.Exists(context.Background(), "jane42")
	require.NoError(t, err)
	assert.True(t, exists)

	// blank pet rows were skipped
	record, err := app.users.Get(context.Background(), "jane42")
	require.NoError(t, err)
	assert.Len(t, record.Pets, 2)

	// the completion flash greets the visitor on the login page
	login := app.get("/api/auth/login")
	require.Equal(t, http.StatusOK, login.Code)
	flash := decodeState(t, login).Flash
	require.NotNil(t, flash)
	assert.Equal(t, msgRegistrationComplete, flash.Message)

	// a fresh wizard walk starts from an empty draft
	guard := app.get("/api/register/step/2")
	assert.Equal(t, http.StatusSeeOther, guard.Code)
}

func TestWizard_LoggedInMembersAreBounced(t *testing.T) {
	app := newTestApp(t)
	app.seedMember("jane42", "hunter2hunter2")
	app.login("jane42", "hunter2hunter2")

	rec := app.get("/api/register/step/1")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, membersRedirect, rec.Header().Get("Location"))
}

func TestStepGet_PrefillsDraftValues(t *testing.T) {
	app := newTestApp(t)

	token := app.csrf("/api/register/step/1")
	rec := app.postForm("/api/register/step/1", url.Values{
		"csrf_token":       {token},
		"username":         {"jane42"},
		"password":         {"hunter2hunter2"},
		"confirm_password": {"hunter2hunter2"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	again := app.get("/api/register/step/1")
	require.Equal(t, http.StatusOK, again.Code)

	state := decodeState(t, again)
	assert.Equal(t, "jane42", state.Values["username"])
	assert.NotContains(t, state.Values, "password", "credential material never leaves the server")
}
