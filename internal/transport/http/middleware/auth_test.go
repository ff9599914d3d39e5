package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtinfra "github.com/restom-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T, wantUserID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantUserID, claims.UserID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_MissingHeader(t *testing.T) {
	provider := jwtinfra.NewProvider("test-secret", time.Hour)
	mw := Auth(provider)

	rec := httptest.NewRecorder()
	mw(okHandler(t, "")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	provider := jwtinfra.NewProvider("test-secret", time.Hour)
	mw := Auth(provider)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	mw(okHandler(t, "")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	signer := jwtinfra.NewProvider("other-secret", time.Hour)
	token, err := signer.Sign("user-1", "alice@example.com", "user")
	require.NoError(t, err)

	mw := Auth(jwtinfra.NewProvider("test-secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw(okHandler(t, "")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	provider := jwtinfra.NewProvider("test-secret", -time.Minute)
	token, err := provider.Sign("user-1", "alice@example.com", "user")
	require.NoError(t, err)

	mw := Auth(provider)
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw(okHandler(t, "")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	provider := jwtinfra.NewProvider("test-secret", time.Hour)
	token, err := provider.Sign("user-1", "alice@example.com", "user")
	require.NoError(t, err)

	mw := Auth(provider)
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw(okHandler(t, "user-1")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
