package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/contract-board/internal/db"
)

func TestHandleMe_NoProfile(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/me", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Profile not found", decodeBody[map[string]string](t, w)["error"])
}

func TestHandleRegisterProfile(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/profiles", map[string]string{"email": "  Dev@Example.com "}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	profile := decodeBody[db.Profile](t, w)
	assert.Equal(t, ts.userID, profile.ID, "profile is keyed by the token subject")
	assert.Equal(t, "dev@example.com", profile.Email)
	assert.False(t, profile.IsPaid)

	w = ts.do(t, http.MethodGet, "/me", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeBody[db.Profile](t, w)
	assert.Equal(t, ts.userID, me.ID)
	assert.Equal(t, "dev@example.com", me.Email)

	// same identity again
	w = ts.do(t, http.MethodPost, "/profiles", map[string]string{"email": "other@example.com"}, true)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleRegisterProfile_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	_, err := ts.store.CreateProfile(t.Context(), &db.ProfileCreateInput{ID: uuid.New(), Email: "dev@example.com"})
	require.NoError(t, err)

	w := ts.do(t, http.MethodPost, "/profiles", map[string]string{"email": "DEV@example.com"}, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decodeBody[map[string]string](t, w)["error"], "email already registered")
}

func TestHandleRegisterProfile_TrimsEmailBeforeValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/profiles", map[string]string{"email": "\tops@example.com \n"}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "ops@example.com", decodeBody[db.Profile](t, w).Email)
}

func TestHandleRegisterProfile_Validation(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []any{map[string]string{}, map[string]string{"email": "nope"}, map[string]string{"email": "   "}, "{"} {
		w := ts.do(t, http.MethodPost, "/profiles", body, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestProfileHandlers_WithoutAuthContext(t *testing.T) {
	ts := newTestServer(t)

	// handlers called directly, bypassing the auth middleware
	w := httptest.NewRecorder()
	ts.handleMe(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	ts.handleRegisterProfile(w, httptest.NewRequest(http.MethodPost, "/profiles", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
