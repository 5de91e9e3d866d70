package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anvilweb/anvil/pkg/password"
)

func TestHasher(t *testing.T) {
	t.Parallel()

	t.Run("hash differs from plaintext", func(t *testing.T) {
		t.Parallel()

		hasher := password.New()
		hash, err := hasher.Hash("secret")
		require.NoError(t, err)
		require.NotEqual(t, "secret", hash)
		require.True(t, strings.HasPrefix(hash, "$2"))
	})

	t.Run("verify accepts correct password", func(t *testing.T) {
		t.Parallel()

		hasher := password.New()
		hash, err := hasher.Hash("secret")
		require.NoError(t, err)
		require.NoError(t, hasher.Verify(hash, "secret"))
	})

	t.Run("verify rejects wrong password", func(t *testing.T) {
		t.Parallel()

		hasher := password.New()
		hash, err := hasher.Hash("secret")
		require.NoError(t, err)
		require.ErrorIs(t, hasher.Verify(hash, "wrong"), password.ErrMismatch)
	})

	t.Run("hashes are salted", func(t *testing.T) {
		t.Parallel()

		hasher := password.New(password.WithCost(4))
		first, err := hasher.Hash("secret")
		require.NoError(t, err)
		second, err := hasher.Hash("secret")
		require.NoError(t, err)
		require.NotEqual(t, first, second)
	})

	t.Run("invalid cost falls back to default", func(t *testing.T) {
		t.Parallel()

		hasher := password.New(password.WithCost(999))
		hash, err := hasher.Hash("secret")
		require.NoError(t, err)
		require.NoError(t, hasher.Verify(hash, "secret"))
	})
}
