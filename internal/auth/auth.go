// Package auth issues and validates the signed service token the HTTP
// façade requires on every identification request. Adapted from
// CineVault's internal/auth/auth.go: that package hashes user passwords
// for a multi-user session store, this one hashes a single shared
// service-token secret and signs/validates HS256 JWTs with it, since the
// identifier has exactly one caller class (internal services), not
// end-user accounts.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken = errors.New("auth: invalid or expired service token")
)

// ServiceClaims is the token payload: just an issued-at/expiry pair and
// the caller-supplied subject, mirroring CineVault's TokenClaims shape.
type ServiceClaims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

// HashSecret hashes the configured service-token secret at rest,
// mirroring HashPassword.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSecret mirrors CheckPassword.
func CheckSecret(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// IssueToken signs a service token for subject, valid for ttl, using
// secret (the plaintext, not the bcrypt hash — HS256 signing needs the
// raw key material).
func IssueToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := ServiceClaims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and verifies tokenString against secret, returning
// the claims on success.
func ValidateToken(secret, tokenString string) (*ServiceClaims, error) {
	claims := &ServiceClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
