// Package auth signs and verifies the session credential handed to clients.
// The credential is a JWT whose only payload is the opaque server-side
// session id; all session state stays on the server.
package auth

import (
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the opaque session id.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string
}

// GenerateToken signs sessionID into a token valid for validityDuration.
func GenerateToken(sessionID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		SessionID: sessionID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSessionIDFromToken verifies tokenString and returns the embedded
// session id. A bad signature, expired token, or malformed input yields
// common.ErrorInvalidToken.
func GetSessionIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", common.ErrorInvalidToken
	}

	if !token.Valid || claims.SessionID == "" {
		return "", common.ErrorInvalidToken
	}

	return claims.SessionID, nil
}
