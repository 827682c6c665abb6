package security

import (
	"testing"
	"time"

	"schoollib-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, err := tm.GenerateAccessToken(10, "Asha Verma", "asha@school.example", domain.RoleStudent)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(10), claims.UserID)
	assert.Equal(t, "Asha Verma", claims.Name)
	assert.Equal(t, domain.RoleStudent, claims.Role)

	actor := claims.Actor()
	assert.Equal(t, int32(10), actor.ID)
	assert.Equal(t, "asha@school.example", actor.Email)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewTokenManager(testSecret).GenerateAccessToken(10, "Asha Verma", "", domain.RoleStudent)
	assert.NoError(t, err)

	_, err = NewTokenManager("some-other-secret").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	claims := UserClaims{
		UserID: 10,
		Role:   domain.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)

	_, err = NewTokenManager(testSecret).ValidateToken(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := NewTokenManager(testSecret).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_MissingUserID(t *testing.T) {
	claims := UserClaims{
		Role: domain.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)

	_, err = NewTokenManager(testSecret).ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
