package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator accepts a fixed set of opaque tokens
type testTokenValidator struct {
	validTokens map[string]uuid.UUID
}

func (v *testTokenValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	userID, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(userID), nil
}

type testClaims uuid.UUID

func (c testClaims) GetUserID() uuid.UUID { return uuid.UUID(c) }

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &testTokenValidator{validTokens: map[string]uuid.UUID{"good-token": userID}}

	var got uuid.UUID
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserID(r)
		require.NoError(t, err)
		got = id
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, header := range []string{"Bearer good-token", "bearer good-token", "BEARER   good-token "} {
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code, header)
		assert.Equal(t, userID, got)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	validator := &testTokenValidator{validTokens: map[string]uuid.UUID{"good-token": uuid.New()}}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"no token", "Bearer"},
		{"extra parts", "Bearer good-token extra"},
		{"unknown token", "Bearer forged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := AuthMiddleware(validator)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodPost, "/companies", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestGetUserID(t *testing.T) {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)

	_, err := GetUserID(req)
	assert.Error(t, err)

	req = req.WithContext(WithUserID(req.Context(), id))
	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	req = req.WithContext(context.WithValue(context.Background(), userIDKey, "not-a-uuid"))
	_, err = GetUserID(req)
	assert.Error(t, err)

	req = req.WithContext(WithUserID(context.Background(), uuid.Nil))
	_, err = GetUserID(req)
	assert.Error(t, err)
}
