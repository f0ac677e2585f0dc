// Package session implements the opaque per-browser session transport: a
// signed HS256 token carrying the authenticated email, stored in an
// HttpOnly cookie.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sooratali/TaskManager/internal/common"
)

// Claims includes the standard registered claims plus the session email.
type Claims struct {
	jwt.RegisteredClaims
	Email string
}

// GenerateToken signs a session token for email, valid for validityDuration.
func GenerateToken(email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// EmailFromToken verifies the token signature and expiry and returns the
// embedded email. Any failure is reported as common.ErrInvalidToken.
func EmailFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Email, nil
}
