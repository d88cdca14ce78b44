//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"time"

	"stageshow/auth"
	"stageshow/errors"
)

// IAuthService is the authorization gate: it decides whether a credential
// presented by a connection grants operator capability.
type IAuthService interface {
	Authenticate(credential string) (Token, error)
}

type Token string

// AuthService verifies the shared operator key (argon2id hash comparison) or
// a previously issued operator token. Either way a fresh token is returned;
// the authorized status itself lives on the connection that presented the
// credential and dies with it.
type AuthService struct {
	operatorKeyHash string
	signingKey      []byte
	tokenDuration   time.Duration
}

func NewAuthService(operatorKeyHash string, signingKey []byte, tokenDuration time.Duration) *AuthService {
	return &AuthService{
		operatorKeyHash: operatorKeyHash,
		signingKey:      signingKey,
		tokenDuration:   tokenDuration,
	}
}

func (s *AuthService) Authenticate(credential string) (Token, error) {
	if credential == "" {
		return "", errors.ErrInvalidCredentials
	}

	match, err := auth.CompareKey(credential, s.operatorKeyHash)
	if err == nil && match {
		return s.issue()
	}

	// Not the operator key; maybe a token from an earlier connection.
	if _, err := auth.ValidateToken(s.signingKey, credential); err == nil {
		return s.issue()
	}

	return "", errors.ErrInvalidCredentials
}

func (s *AuthService) issue() (Token, error) {
	token, err := auth.GenerateToken(s.signingKey, s.tokenDuration)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}
