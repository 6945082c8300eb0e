package auth

import (
	"testing"
	"time"

	"github.com/hostelms/backend/internal/infrastructure/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests-only",
		Expiration: expiration,
		Issuer:     "hostelms-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestService(time.Hour)
	userID := uuid.New()

	token, err := service.GenerateToken(GenerateTokenInput{
		UserID:   userID,
		Username: "admin",
		Role:     "ADMIN",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)

	claims, err := service.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "ADMIN", claims.Role)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateToken_Expired(t *testing.T) {
	service := newTestService(-time.Minute)

	token, err := service.GenerateToken(GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "admin",
		Role:     "ADMIN",
	})
	require.NoError(t, err)

	_, err = service.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service := newTestService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:     "a-completely-different-secret-value",
		Expiration: time.Hour,
		Issuer:     "hostelms-test",
	})

	token, err := service.GenerateToken(GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "admin",
		Role:     "ADMIN",
	})
	require.NoError(t, err)

	_, err = other.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	service := newTestService(time.Hour)
	_, err := service.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
