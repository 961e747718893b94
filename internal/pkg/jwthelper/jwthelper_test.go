package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorteo-app/raffles-api/internal/domain"
)

var signingKey = []byte("test-signing-key")

func TestTokenRoundTrip(t *testing.T) {
	t.Run("entity principal", func(t *testing.T) {
		issued := domain.Principal{EntityID: 7, Role: domain.RoleEntity}

		token, err := GenerateToken(signingKey, issued)
		require.NoError(t, err)

		parsed, err := ParseToken(signingKey, token)
		require.NoError(t, err)
		assert.Equal(t, issued, parsed)
	})

	t.Run("manager principal", func(t *testing.T) {
		issued := domain.Principal{EntityID: 7, Role: domain.RoleManager, ManagerNumber: 3}

		token, err := GenerateToken(signingKey, issued)
		require.NoError(t, err)

		parsed, err := ParseToken(signingKey, token)
		require.NoError(t, err)
		assert.Equal(t, issued, parsed)
	})
}

func TestParseToken_Rejections(t *testing.T) {
	t.Run("wrong key", func(t *testing.T) {
		token, err := GenerateToken(signingKey, domain.Principal{EntityID: 7, Role: domain.RoleEntity})
		require.NoError(t, err)

		_, err = ParseToken([]byte("another-key"), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken(signingKey, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, err := GenerateToken(signingKey, domain.Principal{EntityID: 7, Role: "superuser"})
		require.NoError(t, err)

		_, err = ParseToken(signingKey, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("manager token without a manager number", func(t *testing.T) {
		token, err := GenerateToken(signingKey, domain.Principal{EntityID: 7, Role: domain.RoleManager})
		require.NoError(t, err)

		_, err = ParseToken(signingKey, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("entity token without an entity id", func(t *testing.T) {
		token, err := GenerateToken(signingKey, domain.Principal{Role: domain.RoleEntity})
		require.NoError(t, err)

		_, err = ParseToken(signingKey, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
