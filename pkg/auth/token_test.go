package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken("abc123", "ana@example.com", "cliente")
	require.NoError(t, err)

	claims, err := ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "cliente", claims.Role)
	assert.Equal(t, "access", claims.Use)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := NewRefreshToken("abc123", "ana@example.com", "cliente")
	require.NoError(t, err)

	claims, err := ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.Use)
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	token, err := NewRefreshToken("abc123", "ana@example.com", "cliente")
	require.NoError(t, err)

	_, err = ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrWrongUse)
}

func TestAccessTokenRejectedAsRefreshToken(t *testing.T) {
	token, err := NewAccessToken("abc123", "ana@example.com", "cliente")
	require.NoError(t, err)

	_, err = ParseRefreshToken(token)
	assert.ErrorIs(t, err, ErrWrongUse)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := ParseAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := NewAccessToken("abc123", "ana@example.com", "cliente")
	require.NoError(t, err)

	_, err = ParseAccessToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
