package auth

import (
	"fmt"
	"time"

	"github.com/Rajeswari195/kayak/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload issued at login (register returns the created
// user, not a token). The service only
// issues one token type (no refresh tokens): clients re-authenticate once
// it expires.
type Claims struct {
	UserID int64        `json:"userId"`
	Role   models.Role  `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies HMAC-signed bearer tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService builds a token service from the configured secret and TTL.
func NewService(secret string, ttlSeconds int) *Service {
	return &Service{secret: []byte(secret), ttl: time.Duration(ttlSeconds) * time.Second}
}

// Issue mints a bearer token for the given user.
func (s *Service) Issue(userID int64, role models.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token, returning its claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
