package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestDeployCmd(t *testing.T) {
	t.Run("too few arguments prints usage and fails", func(t *testing.T) {
		t.Chdir(t.TempDir())

		out, err := executeCmd(t, "deploy", "--rpc-url", "http://localhost:8545")
		require.Error(t, err)
		assert.Contains(t, out, "--weth9")
		assert.Contains(t, out, "--v3-position-manager")
	})

	t.Run("unknown flag fails", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := executeCmd(t, "deploy",
			"--rpc-url", "http://localhost:8545",
			"--chain-name", "anvil",
			"--weth9", "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
			"--v3-factory", "0x1F98431c8aD98523631AE4a59f267346ea31F984",
			"--v3-position-manager", "0xC36442b4a4522E871399CD717aBDD847Ab11FE88",
			"--bogus", "1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bogus")
	})

	t.Run("missing private key fails before connecting", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("PRIVATE_KEY", "")

		_, err := executeCmd(t, "deploy",
			"--rpc-url", "http://localhost:8545",
			"--chain-name", "anvil",
			"--weth9", "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
			"--v3-factory", "0x1F98431c8aD98523631AE4a59f267346ea31F984",
			"--v3-position-manager", "0xC36442b4a4522E871399CD717aBDD847Ab11FE88",
			"--non-interactive")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PRIVATE_KEY")

		// The run logger exists by then, so the failure lands in the log file.
		data, readErr := os.ReadFile("logs/anvil.log")
		require.NoError(t, readErr)
		assert.Contains(t, string(data), "PRIVATE_KEY")
	})

	t.Run("failures are not echoed a second time by cobra", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("PRIVATE_KEY", "")

		out, err := executeCmd(t, "deploy",
			"--rpc-url", "http://localhost:8545",
			"--chain-name", "anvil",
			"--weth9", "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
			"--v3-factory", "0x1F98431c8aD98523631AE4a59f267346ea31F984",
			"--v3-position-manager", "0xC36442b4a4522E871399CD717aBDD847Ab11FE88",
			"--non-interactive")
		require.Error(t, err)
		assert.NotContains(t, out, "Error:")
	})

	t.Run("version command succeeds", func(t *testing.T) {
		out, err := executeCmd(t, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "router-deploy version")
	})
}
