package forge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalArtifact = `{
  "abi": [
    {"inputs": [], "stateMutability": "nonpayable", "type": "constructor"}
  ],
  "bytecode": {"object": "0x6080604052"}
}`

func writeArtifact(t *testing.T, root, outDir, name, content string) {
	t.Helper()
	dir := filepath.Join(root, outDir, name+".sol")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(content), 0o644))
}

func TestRepositoryLoad(t *testing.T) {
	t.Run("loads abi and bytecode", func(t *testing.T) {
		root := t.TempDir()
		writeArtifact(t, root, "out", "UnsupportedProtocol", minimalArtifact)

		artifact, err := NewRepository(root).Load("UnsupportedProtocol")
		require.NoError(t, err)
		assert.Equal(t, "UnsupportedProtocol", artifact.Name)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, artifact.Bytecode)
		assert.Empty(t, artifact.ABI.Constructor.Inputs)
	})

	t.Run("missing artifact fails", func(t *testing.T) {
		_, err := NewRepository(t.TempDir()).Load("UniversalRouter")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UniversalRouter")
	})

	t.Run("malformed json fails", func(t *testing.T) {
		root := t.TempDir()
		writeArtifact(t, root, "out", "Broken", `{"abi": [`)

		_, err := NewRepository(root).Load("Broken")
		assert.Error(t, err)
	})

	t.Run("artifact without bytecode fails", func(t *testing.T) {
		root := t.TempDir()
		writeArtifact(t, root, "out", "Empty", `{"abi": [], "bytecode": {"object": ""}}`)

		_, err := NewRepository(root).Load("Empty")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing abi or bytecode")
	})

	t.Run("foundry.toml overrides the out directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "foundry.toml"),
			[]byte("[profile.default]\nout = \"artifacts\"\n"), 0o644))
		writeArtifact(t, root, "artifacts", "UnsupportedProtocol", minimalArtifact)

		_, err := NewRepository(root).Load("UnsupportedProtocol")
		assert.NoError(t, err)
	})

	t.Run("defaults to out without foundry.toml", func(t *testing.T) {
		assert.Equal(t, "out", outDir(t.TempDir()))
	})
}
