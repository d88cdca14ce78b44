package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stageshow/errors"
)

// RoleOperator is the only role a token is ever minted for; display
// connections have nothing to prove.
const RoleOperator = "operator"

// Claims is the payload of an operator token. A token is an alternative
// credential for a later connection, not a shared authorization: every
// connection still authenticates itself.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an operator token valid for the given duration.
func GenerateToken(key []byte, duration time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: RoleOperator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "stageshow",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return signed, nil
}

// ValidateToken parses a token string and verifies signature, expiry and
// role. Any failure collapses into ErrInvalidCredentials so callers cannot
// distinguish a forged token from an expired one.
func ValidateToken(key []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role != RoleOperator {
		return nil, errors.ErrInvalidCredentials
	}
	return claims, nil
}
