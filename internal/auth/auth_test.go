package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword("hunter22", hash))
	assert.False(t, CheckPassword("hunter23", hash))
	assert.False(t, CheckPassword("hunter22", "not-a-hash"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("ada_99"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername(strings.Repeat("a", 51)))
	assert.Error(t, ValidateUsername("ada lovelace"))
	assert.Error(t, ValidateUsername("ada!"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("hunter22"))
	assert.Error(t, ValidatePassword("abc12"))
	assert.Error(t, ValidatePassword(strings.Repeat("a1", 37)))
	assert.Error(t, ValidatePassword("onlyletters"))
	assert.Error(t, ValidatePassword("12345678"))
}

func TestTokens(t *testing.T) {
	const secret = "test-secret"

	t.Run("round trip", func(t *testing.T) {
		token, err := IssueToken(secret, 7, "ada", time.Hour)
		require.NoError(t, err)

		claims, err := ParseToken(secret, token)

		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.PlayerID)
		assert.Equal(t, "ada", claims.Username)
		assert.Equal(t, "ada", claims.Subject)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := IssueToken(secret, 7, "ada", time.Hour)
		require.NoError(t, err)

		_, err = ParseToken("other-secret", token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := IssueToken(secret, 7, "ada", -time.Minute)
		require.NoError(t, err)

		_, err = ParseToken(secret, token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken(secret, "not.a.token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{Username: "ada"})
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = ParseToken(secret, signed)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
