package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/contract-board/internal/config"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(t *testing.T, expirationHours int) *JWTService {
	t.Helper()
	return NewJWTService(&config.JWTConfig{
		Secret:          testJWTSecret,
		Issuer:          config.DefaultJWTIssuer,
		ExpirationHours: expirationHours,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := setupTestJWTService(t, 24)
	subject := uuid.New()

	token, err := svc.GenerateToken(subject, 0)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, subject, claims.GetUserID())
	assert.Equal(t, config.DefaultJWTIssuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_CustomTTL(t *testing.T) {
	svc := setupTestJWTService(t, 24)

	token, err := svc.GenerateToken(uuid.New(), 2*time.Hour)
	require.NoError(t, err)
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_NilSubject(t *testing.T) {
	_, err := setupTestJWTService(t, 1).GenerateToken(uuid.Nil, 0)
	assert.Error(t, err)
}

func TestJWTService_Expired(t *testing.T) {
	svc := setupTestJWTService(t, 1)
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }
	token, err := svc.GenerateToken(uuid.New(), 0)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestJWTService_Rejects(t *testing.T) {
	svc := setupTestJWTService(t, 1)
	subject := uuid.New()

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key any) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := jwt.RegisteredClaims{
		Subject:   subject.String(),
		Issuer:    config.DefaultJWTIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	wrongIssuer := valid
	wrongIssuer.Issuer = "someone-else"
	noExpiry := valid
	noExpiry.ExpiresAt = nil
	badSubject := valid
	badSubject.Subject = "admin"

	tests := []struct {
		name    string
		token   string
		wantErr string
	}{
		{"empty", "", "empty"},
		{"malformed", "not.a.jwt", "malformed"},
		{"wrong secret", sign(valid, jwt.SigningMethodHS256, []byte("another-secret-entirely-32-bytes")), "signature"},
		{"none algorithm", sign(valid, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType), ""},
		{"wrong issuer", sign(wrongIssuer, jwt.SigningMethodHS256, []byte(testJWTSecret)), ""},
		{"no expiry", sign(noExpiry, jwt.SigningMethodHS256, []byte(testJWTSecret)), ""},
		{"subject not uuid", sign(badSubject, jwt.SigningMethodHS256, []byte(testJWTSecret)), "not a UUID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	svc := setupTestJWTService(t, 1)
	subject := uuid.New()
	token, err := svc.GenerateToken(subject, 0)
	require.NoError(t, err)

	claims, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, subject, claims.GetUserID())

	_, err = svc.AsTokenValidator().ValidateToken("garbage")
	assert.Error(t, err)
}
