// Package auth issues and verifies the signed bearer tokens that carry a
// user's identity. Tokens are HS256 JWTs whose subject is the user name.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the standard registered claims; Subject carries the user name
// and ID is unique per issued token, so two tokens minted for the same user
// within one second still differ.
type Claims struct {
	jwt.RegisteredClaims
}

// now is a test seam for the issue time.
var now = time.Now

// GenerateToken signs a token for subject. A non-positive validityDuration
// produces a token without an expiry claim.
func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	issued := now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(issued),
		},
	}
	if validityDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(issued.Add(validityDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSubjectFromToken verifies tokenString and returns its subject.
// Expired tokens yield common.ErrTokenExpired; anything else that fails
// (empty, malformed, wrong signature, wrong algorithm, no subject) yields
// common.ErrInvalidToken wrapping the parser's reason.
func GetSubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	if tokenString == "" {
		return "", common.ErrInvalidToken
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
