package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/evm-tools/router-deploy/internal/forge"
)

// Deployment is the on-chain outcome of a single contract deployment.
type Deployment struct {
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
}

// Client wraps a JSON-RPC connection together with the signing identity
// used for every transaction of a run.
type Client struct {
	// ShowProgress enables a console spinner while waiting for
	// confirmations. Off in non-interactive runs.
	ShowProgress bool

	eth     *ethclient.Client
	auth    *bind.TransactOpts
	from    common.Address
	chainID *big.Int
}

// Dial connects to the RPC endpoint, queries its chain ID and builds a
// keyed transactor for the given private key.
func Dial(ctx context.Context, rpcURL string, key *ecdsa.PrivateKey) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	return &Client{
		eth:     eth,
		auth:    auth,
		from:    crypto.PubkeyToAddress(key.PublicKey),
		chainID: chainID,
	}, nil
}

// From returns the deployer address.
func (c *Client) From() common.Address {
	return c.from
}

// ChainID returns the connected chain's ID.
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

// Balance returns the deployer's native-token balance. A zero balance is an
// error: the account cannot pay for gas.
func (c *Client) Balance(ctx context.Context) (*big.Int, error) {
	balance, err := c.eth.BalanceAt(ctx, c.from, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for %s: %w", c.from.Hex(), err)
	}
	if balance.Sign() == 0 {
		return nil, fmt.Errorf("account %s has zero balance, cannot pay for gas", c.from.Hex())
	}
	return balance, nil
}

// Deploy submits a contract-creation transaction and blocks until code is
// installed at the new address, then resolves the confirming block number
// from the receipt.
func (c *Client) Deploy(ctx context.Context, artifact *forge.Artifact, args ...any) (*Deployment, error) {
	opts := *c.auth
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(&opts, artifact.ABI, artifact.Bytecode, c.eth, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", artifact.Name, err)
	}

	if c.ShowProgress {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = fmt.Sprintf(" waiting for %s confirmation (tx %s)", artifact.Name, tx.Hash().Hex())
		s.Start()
		defer s.Stop()
	}

	if _, err := bind.WaitDeployed(ctx, c.eth, tx); err != nil {
		return nil, fmt.Errorf("deployment of %s was not confirmed: %w", artifact.Name, err)
	}

	receipt, err := c.eth.TransactionReceipt(ctx, tx.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt for %s: %w", artifact.Name, err)
	}

	return &Deployment{
		Address:     address,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}, nil
}
