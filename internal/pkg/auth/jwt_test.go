package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiji0711/final-final/internal/app/models"
	"github.com/keiji0711/final-final/internal/pkg/apperrors"
)

func testService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "osas.attendance",
	})
}

func testOfficer() *models.User {
	return &models.User{
		ID:       7,
		Username: "admin",
		RoleType: models.RoleOfficer,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testService(time.Hour)

	token, expiresIn, err := svc.GenerateToken(testOfficer())
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, string(models.RoleOfficer), claims.RoleType)
	assert.Equal(t, "osas.attendance", claims.Issuer)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := testService(-time.Minute)

	token, _, err := svc.GenerateToken(testOfficer())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, err := testService(time.Hour).GenerateToken(testOfficer())
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different", AccessTokenExp: time.Hour})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateGarbageToken(t *testing.T) {
	_, err := testService(time.Hour).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// A bare token without the prefix passes through
	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("secret-password-123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password-123", hashed)

	assert.True(t, CheckPassword(hashed, "secret-password-123"))
	assert.False(t, CheckPassword(hashed, "wrong-password"))
}
