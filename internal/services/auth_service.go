package services

import (
	"fmt"
	"time"

	"smartstock/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is how long an issued bearer token stays valid.
const TokenTTL = 8 * time.Hour

// AuthService signs and verifies the bearer tokens carrying identity and
// business (tenant) claims.
type AuthService interface {
	IssueToken(user *models.User) (string, error)
	ValidateToken(tokenString string) (*TokenClaims, error)
}

// TokenClaims is the JWT payload: identity, role and the optional business id.
type TokenClaims struct {
	UserID     string  `json:"user_id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	BusinessID *string `json:"business_id"`
	jwt.RegisteredClaims
}

// BusinessUUID parses the business claim. ok is false for users not yet
// associated with a business.
func (c *TokenClaims) BusinessUUID() (uuid.UUID, bool) {
	if c.BusinessID == nil || *c.BusinessID == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(*c.BusinessID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

type authService struct {
	jwtSecret []byte
}

func NewAuthService(jwtSecret string) AuthService {
	return &authService{jwtSecret: []byte(jwtSecret)}
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	now := time.Now()

	var businessID *string
	if user.BusinessID != nil {
		id := user.BusinessID.String()
		businessID = &id
	}

	claims := TokenClaims{
		UserID:     user.ID.String(),
		Username:   user.Username,
		Email:      user.Email,
		Role:       user.Role,
		BusinessID: businessID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "smartstock",
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token. Every failure mode (malformed,
// expired, bad signature, wrong algorithm) comes back as a plain error so the
// caller surfaces one uniform "not authorized" to clients.
func (s *authService) ValidateToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token not valid")
	}
	return claims, nil
}
