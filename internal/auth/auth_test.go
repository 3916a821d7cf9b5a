package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nursultantorobaev/selfhub-services/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signedToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestResolveOwner(t *testing.T) {
	t.Parallel()

	t.Run("explicit ID wins over the token", func(t *testing.T) {
		t.Parallel()

		owner, err := auth.ResolveOwner("user-42", "Bearer garbage", secret)

		require.NoError(t, err)
		assert.Equal(t, "user-42", owner)
	})

	t.Run("valid token resolves to the subject", func(t *testing.T) {
		t.Parallel()

		owner, err := auth.ResolveOwner("", "Bearer "+signedToken(t, "user-7"), secret)

		require.NoError(t, err)
		assert.Equal(t, "user-7", owner)
	})

	t.Run("no credentials fail", func(t *testing.T) {
		t.Parallel()

		_, err := auth.ResolveOwner("", "", secret)

		require.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("token signed with a different secret fails", func(t *testing.T) {
		t.Parallel()

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-7"})
		signed, err := token.SignedString([]byte("other-secret"))
		require.NoError(t, err)

		_, err = auth.ResolveOwner("", "Bearer "+signed, secret)

		require.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("token without a subject fails", func(t *testing.T) {
		t.Parallel()

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = auth.ResolveOwner("", "Bearer "+signed, secret)

		require.ErrorIs(t, err, auth.ErrUnauthenticated)
	})
}
