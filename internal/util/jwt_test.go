package util

import (
	"testing"
	"time"

	"lifeos_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 42},
		Email:     "demo@lifeos.local",
		Role:      model.Coach,
	}

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.Coach, claims.Role)
	assert.Equal(t, "demo@lifeos.local", claims.Email)
}

func TestParseJWTWrongSecret(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}}

	token, err := GenerateJWT(user, "secret-a", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-b")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}}

	token, err := GenerateJWT(user, "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "test-secret")
	assert.Error(t, err)
}
