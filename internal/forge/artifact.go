package forge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Artifact is a compiled contract ready to deploy: its parsed ABI and the
// creation bytecode.
type Artifact struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

// rawArtifact mirrors the Foundry artifact JSON we care about.
type rawArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode struct {
		Object string `json:"object"`
	} `json:"bytecode"`
}

// foundryTOML is the subset of foundry.toml used to locate build output.
type foundryTOML struct {
	Profile map[string]struct {
		Out string `toml:"out"`
	} `toml:"profile"`
}

// Repository loads compiled artifacts from a Foundry project's build output.
type Repository struct {
	root string
	out  string
}

// NewRepository creates an artifact repository rooted at projectRoot. The
// output directory is `out` unless foundry.toml's default profile overrides
// it.
func NewRepository(projectRoot string) *Repository {
	return &Repository{
		root: projectRoot,
		out:  outDir(projectRoot),
	}
}

func outDir(projectRoot string) string {
	var cfg foundryTOML
	if _, err := toml.DecodeFile(filepath.Join(projectRoot, "foundry.toml"), &cfg); err != nil {
		return "out"
	}
	if profile, ok := cfg.Profile["default"]; ok && profile.Out != "" {
		return profile.Out
	}
	return "out"
}

// Load reads <root>/<out>/<Name>.sol/<Name>.json and returns the parsed
// artifact. The build step producing the file is a hard prerequisite.
func (r *Repository) Load(name string) (*Artifact, error) {
	path := filepath.Join(r.root, r.out, name+".sol", name+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact for %s (did you run forge build?): %w", name, err)
	}

	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if len(raw.ABI) == 0 || raw.Bytecode.Object == "" {
		return nil, fmt.Errorf("artifact %s is missing abi or bytecode", path)
	}

	parsedABI, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI for %s: %w", name, err)
	}

	bytecode, err := hexutil.Decode(raw.Bytecode.Object)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bytecode for %s: %w", name, err)
	}

	return &Artifact{Name: name, ABI: parsedABI, Bytecode: bytecode}, nil
}
