package services

import (
	"testing"
	"time"

	"smartstock/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testUser(businessID *uuid.UUID) *models.User {
	return &models.User{
		ID:         uuid.New(),
		Username:   "cashier",
		Email:      "cashier@example.com",
		Role:       models.RoleUser,
		BusinessID: businessID,
	}
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := NewAuthService("test-secret")
	businessID := uuid.New()
	user := testUser(&businessID)

	token, err := svc.IssueToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "cashier", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)

	parsed, ok := claims.BusinessUUID()
	assert.True(t, ok)
	assert.Equal(t, businessID, parsed)
}

func TestIssueToken_NoBusiness(t *testing.T) {
	svc := NewAuthService("test-secret")

	token, err := svc.IssueToken(testUser(nil))
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Nil(t, claims.BusinessID)

	_, ok := claims.BusinessUUID()
	assert.False(t, ok)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewAuthService("secret-one")
	verifier := NewAuthService("secret-two")

	token, err := issuer.IssueToken(testUser(nil))
	assert.NoError(t, err)

	claims, err := verifier.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewAuthService("test-secret")

	claims, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Expired(t *testing.T) {
	secret := []byte("test-secret")
	claims := TokenClaims{
		UserID:   uuid.NewString(),
		Username: "cashier",
		Role:     models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-TokenTTL)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	assert.NoError(t, err)

	svc := NewAuthService("test-secret")
	parsed, err := svc.ValidateToken(expired)
	assert.Error(t, err)
	assert.Nil(t, parsed)
}

func TestValidateToken_RejectsUnsignedAlgorithm(t *testing.T) {
	claims := TokenClaims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	svc := NewAuthService("test-secret")
	parsed, err := svc.ValidateToken(unsigned)
	assert.Error(t, err)
	assert.Nil(t, parsed)
}
