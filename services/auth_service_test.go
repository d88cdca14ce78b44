package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stageshow/auth"
	"stageshow/errors"
	"stageshow/services"
)

func newTestAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	hash, err := auth.HashKey("backstage-pass")
	require.NoError(t, err)
	return services.NewAuthService(hash, []byte("signing-key"), time.Hour)
}

func TestAuthService_Authenticate(t *testing.T) {
	service := newTestAuthService(t)

	t.Run("should issue a token for the operator key", func(t *testing.T) {
		req := require.New(t)

		token, err := service.Authenticate("backstage-pass")
		req.NoError(err)
		req.NotEmpty(token)

		claims, err := auth.ValidateToken([]byte("signing-key"), string(token))
		req.NoError(err)
		req.Equal(auth.RoleOperator, claims.Role)
	})

	t.Run("should accept a previously issued token as credential", func(t *testing.T) {
		req := require.New(t)

		first, err := service.Authenticate("backstage-pass")
		req.NoError(err)

		second, err := service.Authenticate(string(first))
		req.NoError(err)
		req.NotEmpty(second)
	})

	t.Run("should reject a wrong key", func(t *testing.T) {
		req := require.New(t)

		_, err := service.Authenticate("front-row-guess")
		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should reject an empty credential", func(t *testing.T) {
		req := require.New(t)

		_, err := service.Authenticate("")
		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should reject a token signed with another key", func(t *testing.T) {
		req := require.New(t)

		forged, err := auth.GenerateToken([]byte("not-the-signing-key"), time.Hour)
		req.NoError(err)

		_, err = service.Authenticate(forged)
		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})
}
