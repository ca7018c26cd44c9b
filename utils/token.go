package authUtils

import (
	"errors"
	"fmt"
	"time"

	"civicreport-be/models"

	"github.com/golang-jwt/jwt/v5"
)

const AuthCookie = "auth_token"

var ErrMissingSecret = errors.New("JWT secret is not configured")

// SessionClaims carries the signed-in user's session in the token.
type SessionClaims struct {
	Session models.Session `json:"session"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session for the given lifetime
func GenerateToken(sess models.Session, secret string, expiry time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := SessionClaims{
		Session: sess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and returns the session.
func ParseToken(tokenString, secret string) (models.Session, error) {
	if secret == "" {
		return models.Session{}, ErrMissingSecret
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.Session{}, err
	}
	if !token.Valid {
		return models.Session{}, jwt.ErrTokenInvalidClaims
	}
	return claims.Session, nil
}
