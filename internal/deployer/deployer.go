package deployer

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/evm-tools/router-deploy/internal/chain"
	"github.com/evm-tools/router-deploy/internal/config"
	"github.com/evm-tools/router-deploy/internal/forge"
	"github.com/evm-tools/router-deploy/internal/logging"
)

// Contract names, matching the Foundry artifact file names.
const (
	ContractUnsupportedProtocol = "UnsupportedProtocol"
	ContractUniversalRouter     = "UniversalRouter"
)

// Init-code hashes baked into the router for computing V2 pair and V3 pool
// addresses. Fixed properties of the factory bytecode, not configurable.
var (
	PairInitCodeHash = common.HexToHash("0x96e8ac4277198ff8b6f785478aa9a39f403cb768dd02cbee326c3e7da348845f")
	PoolInitCodeHash = common.HexToHash("0xe34f199b19b2b4f47f68442619d555527d244f78a3297ea89325f843f87b8b54")
)

// RouterParameters is the single struct argument of the UniversalRouter
// constructor. Field names follow the ABI tuple component names.
type RouterParameters struct {
	Permit2              common.Address
	Weth9                common.Address
	V2Factory            common.Address
	V3Factory            common.Address
	PairInitCodeHash     [32]byte
	PoolInitCodeHash     [32]byte
	V4PoolManager        common.Address
	V3NFTPositionManager common.Address
	V4PositionManager    common.Address
}

// Client submits a deployment transaction and waits for confirmation.
type Client interface {
	Deploy(ctx context.Context, artifact *forge.Artifact, args ...any) (*chain.Deployment, error)
}

// Loader resolves compiled artifacts by contract name.
type Loader interface {
	Load(name string) (*forge.Artifact, error)
}

// Result collects the outcome of a full run.
type Result struct {
	UnsupportedProtocol *chain.Deployment
	UniversalRouter     *chain.Deployment
}

// Sequencer runs the two deployments in fixed order.
type Sequencer struct {
	cfg       *config.Config
	client    Client
	artifacts Loader
	log       *logging.RunLog
}

func New(cfg *config.Config, client Client, artifacts Loader, log *logging.RunLog) *Sequencer {
	return &Sequencer{
		cfg:       cfg,
		client:    client,
		artifacts: artifacts,
		log:       log,
	}
}

// Resolve substitutes the fallback address for the zero-address sentinel
// and leaves every other address untouched.
func Resolve(addr, fallback common.Address) common.Address {
	if addr == config.ZeroAddress {
		return fallback
	}
	return addr
}

// BuildRouterParameters assembles the router constructor argument from the
// configuration, routing opted-out integrations to the fallback contract.
// No address field of the result is ever the zero address.
func BuildRouterParameters(cfg *config.Config, fallback common.Address) RouterParameters {
	return RouterParameters{
		Permit2:              Resolve(cfg.Permit2, fallback),
		Weth9:                Resolve(cfg.WETH9, fallback),
		V2Factory:            Resolve(cfg.V2Factory, fallback),
		V3Factory:            Resolve(cfg.V3Factory, fallback),
		PairInitCodeHash:     [32]byte(PairInitCodeHash),
		PoolInitCodeHash:     [32]byte(PoolInitCodeHash),
		V4PoolManager:        Resolve(cfg.V4PoolManager, fallback),
		V3NFTPositionManager: Resolve(cfg.V3PositionManager, fallback),
		V4PositionManager:    Resolve(cfg.V4PositionManager, fallback),
	}
}

// Run deploys UnsupportedProtocol, then UniversalRouter parameterized with
// its address as the fallback. Any failure aborts the run; a failure after
// the first step leaves UnsupportedProtocol deployed with no rollback.
func (s *Sequencer) Run(ctx context.Context) (*Result, error) {
	s.log.Step("Deploying %s...", ContractUnsupportedProtocol)

	unsupported, err := s.deploy(ctx, ContractUnsupportedProtocol)
	if err != nil {
		return nil, err
	}
	s.log.Success("%s deployed at %s (tx %s)",
		ContractUnsupportedProtocol, unsupported.Address.Hex(), unsupported.TxHash.Hex())

	params := BuildRouterParameters(s.cfg, unsupported.Address)

	s.log.Step("Deploying %s...", ContractUniversalRouter)

	router, err := s.deploy(ctx, ContractUniversalRouter, params)
	if err != nil {
		return nil, err
	}
	s.log.Success("%s deployed at %s (tx %s, block %d)",
		ContractUniversalRouter, router.Address.Hex(), router.TxHash.Hex(), router.BlockNumber)

	return &Result{
		UnsupportedProtocol: unsupported,
		UniversalRouter:     router,
	}, nil
}

func (s *Sequencer) deploy(ctx context.Context, name string, args ...any) (*chain.Deployment, error) {
	artifact, err := s.artifacts.Load(name)
	if err != nil {
		return nil, err
	}
	return s.client.Deploy(ctx, artifact, args...)
}
