package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "ticket-core", 5)

	token, expiresAt, err := tm.GenerateToken("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestTokenManager_RejectsForeignTokens(t *testing.T) {
	token, _, err := NewTokenManager("other", "ticket-core", 5).GenerateToken("user-1")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "ticket-core", 5).ParseToken(token)
	assert.Error(t, err)

	token, _, err = NewTokenManager("secret", "someone-else", 5).GenerateToken("user-1")
	require.NoError(t, err)
	_, err = NewTokenManager("secret", "ticket-core", 5).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsEmptySubject(t *testing.T) {
	tm := NewTokenManager("secret", "", 5)
	token, _, err := tm.GenerateToken("")
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}
