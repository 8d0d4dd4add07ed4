// Package auth issues and verifies the bearer tokens that carry a caller's
// identity. Tokens are HS256 JWTs valid for seven days and are never revoked
// server-side.
package auth

import (
	"time"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

// TokenValidity is the fixed lifetime of an identity token.
const TokenValidity = 7 * 24 * time.Hour

// TokenIssuer signs and verifies identity tokens with a shared secret.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer using the wall clock.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// WithClock returns a copy of the issuer that reads time from now.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	return &TokenIssuer{secret: t.secret, now: now}
}

// Issue returns a signed token for the user. The signature is deterministic
// for a given user, handle and issue second.
func (t *TokenIssuer) Issue(userID, username string) (string, error) {
	issued := t.now().UTC().Truncate(time.Second)
	claims := &models.JwtCustomClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(TokenValidity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the signature and expiry of tokenString and returns the user
// ID it was issued for.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &models.JwtCustomClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", common.ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return "", common.ErrInvalidToken
	}
	if t.now().After(claims.ExpiresAt.Time) {
		return "", common.ErrTokenExpired
	}
	return claims.Subject, nil
}
