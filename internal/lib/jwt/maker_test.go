package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParse(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Minute)

	tests := []struct {
		name    string
		userUID string
		role    string
	}{
		{name: "роль admin", userUID: "c6f1c8a0-0000-0000-0000-000000000001", role: "admin"},
		{name: "роль user", userUID: "c6f1c8a0-0000-0000-0000-000000000002", role: "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenStr, err := maker.GenerateToken(tt.userUID, tt.role)
			require.NoError(t, err)
			require.NotEmpty(t, tokenStr)

			claims, err := maker.ParseToken(tokenStr)
			require.NoError(t, err)
			assert.Equal(t, tt.userUID, claims.UserUID())
			assert.Equal(t, tt.role, claims.Role)
		})
	}
}

func TestMaker_ExpiredToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", -time.Minute)

	tokenStr, err := maker.GenerateToken("some-uid", "user")
	require.NoError(t, err)

	_, err = maker.ParseToken(tokenStr)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestMaker_WrongSecret(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Minute)
	other := NewJWTMaker("another-secret", time.Minute)

	tokenStr, err := maker.GenerateToken("some-uid", "user")
	require.NoError(t, err)

	_, err = other.ParseToken(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestMaker_MalformedToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{name: "пустая строка", token: ""},
		{name: "не jwt", token: "not-a-token"},
		{name: "повреждённый payload", token: "eyJhbGciOiJIUzI1NiJ9.broken.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestMaker_EmptySubject(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Minute)

	tokenStr, err := maker.GenerateToken("", "user")
	require.NoError(t, err)

	_, err = maker.ParseToken(tokenStr)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
