package jwtinfra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	p := NewProvider("test-secret", time.Hour)

	token, err := p.Sign("user-1", "alice@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewProvider("secret-a", time.Hour).Sign("user-1", "alice@example.com", "user")
	require.NoError(t, err)

	_, err = NewProvider("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	token, err := NewProvider("test-secret", -time.Minute).Sign("user-1", "alice@example.com", "user")
	require.NoError(t, err)

	_, err = NewProvider("test-secret", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewProvider("test-secret", time.Hour).Verify("not.a.token")
	assert.Error(t, err)
}
