package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stageshow/errors"
)

func TestHashAndCompareKey(t *testing.T) {
	t.Run("should accept the original key and reject others", func(t *testing.T) {
		req := require.New(t)

		hash, err := HashKey("backstage-2026")
		req.NoError(err)
		req.Contains(hash, "$argon2id$")

		ok, err := CompareKey("backstage-2026", hash)
		req.NoError(err)
		req.True(ok)

		ok, err = CompareKey("backstage-2025", hash)
		req.NoError(err)
		req.False(ok)
	})

	t.Run("should produce a different salt per hash", func(t *testing.T) {
		req := require.New(t)
		first, err := HashKey("same-key")
		req.NoError(err)
		second, err := HashKey("same-key")
		req.NoError(err)
		req.NotEqual(first, second)
	})

	t.Run("should fail on a malformed encoded hash", func(t *testing.T) {
		req := require.New(t)
		_, err := CompareKey("key", "not-a-hash")
		req.Error(err)
	})
}

func TestTokens(t *testing.T) {
	key := []byte("unit-test-signing-key")

	t.Run("should round-trip a valid operator token", func(t *testing.T) {
		req := require.New(t)

		token, err := GenerateToken(key, time.Hour)
		req.NoError(err)

		claims, err := ValidateToken(key, token)
		req.NoError(err)
		req.Equal(RoleOperator, claims.Role)
	})

	t.Run("should reject a token signed with another key", func(t *testing.T) {
		req := require.New(t)

		token, err := GenerateToken([]byte("other-key"), time.Hour)
		req.NoError(err)

		_, err = ValidateToken(key, token)
		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		req := require.New(t)

		token, err := GenerateToken(key, -time.Minute)
		req.NoError(err)

		_, err = ValidateToken(key, token)
		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		req := require.New(t)
		_, err := ValidateToken(key, "garbage.token.value")
		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})
}
