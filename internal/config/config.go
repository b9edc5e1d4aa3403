package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ZeroAddress is the sentinel meaning "no integration": the deployment
// sequencer later substitutes the UnsupportedProtocol fallback for it.
var ZeroAddress = common.Address{}

// Permit2Address is the canonical Permit2 deployment, identical on every
// chain it has been deployed to.
var Permit2Address = common.HexToAddress("0x000000000022D473030F116dDEE9F6B43aC78BA3")

// ErrUsage signals that too few arguments were given for a parse attempt to
// be meaningful; the caller prints usage instead of a field-level error.
var ErrUsage = errors.New("not enough arguments")

// Config holds everything a deployment run needs. Built once by Parse and
// never mutated afterwards.
type Config struct {
	RPCURL    string
	ChainName string

	WETH9             common.Address
	V2Factory         common.Address
	V3Factory         common.Address
	V3PositionManager common.Address
	V4PoolManager     common.Address
	V4PositionManager common.Address
	Permit2           common.Address

	Timeout        time.Duration
	NonInteractive bool
}

// rawConfig carries flag values as strings so validation errors can quote
// exactly what the user typed.
type rawConfig struct {
	rpcURL            string
	chainName         string
	weth9             string
	v2Factory         string
	v3Factory         string
	v3PositionManager string
	v4PoolManager     string
	v4PositionManager string
	permit2           string
	timeout           time.Duration
	nonInteractive    bool
}

const zeroAddressHex = "0x0000000000000000000000000000000000000000"

func newFlagSet(raw *rawConfig) *pflag.FlagSet {
	v := viper.New()
	_ = v.BindEnv("rpc-url", "RPC_URL")
	_ = v.BindEnv("chain-name", "CHAIN_NAME")

	fs := pflag.NewFlagSet("deploy", pflag.ContinueOnError)
	fs.StringVar(&raw.rpcURL, "rpc-url", v.GetString("rpc-url"), "JSON-RPC endpoint URL")
	fs.StringVar(&raw.chainName, "chain-name", v.GetString("chain-name"), "human-readable chain name, used for the log file")
	fs.StringVar(&raw.weth9, "weth9", "", "WETH9 contract address")
	fs.StringVar(&raw.v3Factory, "v3-factory", "", "Uniswap V3 factory address")
	fs.StringVar(&raw.v3PositionManager, "v3-position-manager", "", "Uniswap V3 NFT position manager address")
	fs.StringVar(&raw.v2Factory, "v2-factory", zeroAddressHex, "Uniswap V2 factory address (omit to route V2 calls to UnsupportedProtocol)")
	fs.StringVar(&raw.permit2, "permit2", Permit2Address.Hex(), "Permit2 address")
	fs.StringVar(&raw.v4PoolManager, "v4-pool-manager", zeroAddressHex, "Uniswap V4 pool manager address (omit to route V4 calls to UnsupportedProtocol)")
	fs.StringVar(&raw.v4PositionManager, "v4-position-manager", zeroAddressHex, "Uniswap V4 position manager address")
	fs.DurationVar(&raw.timeout, "timeout", 0, "overall run deadline (0 = wait forever)")
	fs.BoolVar(&raw.nonInteractive, "non-interactive", false, "skip the confirmation prompt and progress spinners")
	return fs
}

// Usage returns the flag help text for the deploy command.
func Usage() string {
	return newFlagSet(&rawConfig{}).FlagUsages()
}

// Parse converts raw command-line tokens into a validated Config.
func Parse(args []string) (*Config, error) {
	if len(args) < 5 {
		return nil, ErrUsage
	}

	raw := &rawConfig{}
	fs := newFlagSet(raw)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	required := []struct {
		flag  string
		value string
	}{
		{"rpc-url", raw.rpcURL},
		{"chain-name", raw.chainName},
		{"weth9", raw.weth9},
		{"v3-factory", raw.v3Factory},
		{"v3-position-manager", raw.v3PositionManager},
	}
	for _, req := range required {
		if strings.TrimSpace(req.value) == "" {
			return nil, fmt.Errorf("missing required flag --%s", req.flag)
		}
	}

	cfg := &Config{
		RPCURL:         raw.rpcURL,
		ChainName:      raw.chainName,
		Timeout:        raw.timeout,
		NonInteractive: raw.nonInteractive,
	}

	var err error
	if cfg.WETH9, err = requiredAddress(raw.weth9, "weth9"); err != nil {
		return nil, err
	}
	if cfg.V3Factory, err = requiredAddress(raw.v3Factory, "v3-factory"); err != nil {
		return nil, err
	}
	if cfg.V3PositionManager, err = requiredAddress(raw.v3PositionManager, "v3-position-manager"); err != nil {
		return nil, err
	}
	if cfg.V2Factory, err = optionalAddress(raw.v2Factory, "v2-factory"); err != nil {
		return nil, err
	}
	if cfg.Permit2, err = optionalAddress(raw.permit2, "permit2"); err != nil {
		return nil, err
	}
	if cfg.V4PoolManager, err = optionalAddress(raw.v4PoolManager, "v4-pool-manager"); err != nil {
		return nil, err
	}
	if cfg.V4PositionManager, err = optionalAddress(raw.v4PositionManager, "v4-position-manager"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// requiredAddress validates unconditionally.
func requiredAddress(value, field string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid address for --%s: %s", field, value)
	}
	return common.HexToAddress(value), nil
}

// optionalAddress skips validation for the zero-address sentinel so the
// defaults never trip the validator.
func optionalAddress(value, field string) (common.Address, error) {
	if strings.EqualFold(value, zeroAddressHex) {
		return ZeroAddress, nil
	}
	return requiredAddress(value, field)
}
