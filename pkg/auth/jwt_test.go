package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efficience-dental/agenda-api/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := &model.User{ID: uuid.New(), Email: "staff@cabinet.fr"}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)
	user := &model.User{ID: uuid.New(), Email: "staff@cabinet.fr"}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestWrongSecretIsRejected(t *testing.T) {
	user := &model.User{ID: uuid.New(), Email: "staff@cabinet.fr"}

	token, err := NewJWTService("secret-a", time.Hour).GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenIsRejected(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
