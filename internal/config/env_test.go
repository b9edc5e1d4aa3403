package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// First default anvil account.
const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestPrivateKeyFromEnv(t *testing.T) {
	t.Run("valid key derives the deployer address", func(t *testing.T) {
		t.Setenv("PRIVATE_KEY", testKey)

		key, from, err := PrivateKeyFromEnv()
		require.NoError(t, err)
		require.NotNil(t, key)
		assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", from.Hex())
	})

	t.Run("0x prefix is tolerated", func(t *testing.T) {
		t.Setenv("PRIVATE_KEY", "0x"+testKey)

		_, from, err := PrivateKeyFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", from.Hex())
	})

	t.Run("missing key fails", func(t *testing.T) {
		t.Setenv("PRIVATE_KEY", "")

		_, _, err := PrivateKeyFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PRIVATE_KEY")
	})

	t.Run("malformed key fails", func(t *testing.T) {
		t.Setenv("PRIVATE_KEY", "0xnothex")

		_, _, err := PrivateKeyFromEnv()
		assert.Error(t, err)
	})
}
