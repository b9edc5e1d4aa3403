package config

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadEnvFiles loads .env and .env.local from the project root so that flag
// defaults and PRIVATE_KEY can be provided per project. A missing file is
// fine; a malformed one only warns.
func LoadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// PrivateKeyFromEnv reads and parses the required PRIVATE_KEY environment
// variable, returning the key and the deployer address derived from it.
func PrivateKeyFromEnv() (*ecdsa.PrivateKey, common.Address, error) {
	v := viper.New()
	_ = v.BindEnv("private-key", "PRIVATE_KEY")

	raw := strings.TrimSpace(v.GetString("private-key"))
	if raw == "" {
		return nil, common.Address{}, fmt.Errorf("PRIVATE_KEY environment variable is not set")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("failed to parse PRIVATE_KEY: %w", err)
	}
	return key, crypto.PubkeyToAddress(key.PublicKey), nil
}
