package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/evm-tools/router-deploy/internal/chain"
	"github.com/evm-tools/router-deploy/internal/config"
	"github.com/evm-tools/router-deploy/internal/deployer"
	"github.com/evm-tools/router-deploy/internal/forge"
	"github.com/evm-tools/router-deploy/internal/logging"
)

// NewDeployCmd creates the deploy command. Flag parsing is delegated to
// config.Parse so the whole argument contract lives in one place.
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy --rpc-url <url> --chain-name <name> --weth9 <addr> --v3-factory <addr> --v3-position-manager <addr> [flags]",
		Short: "Deploy UnsupportedProtocol and UniversalRouter",
		Long: `Deploys UnsupportedProtocol, then UniversalRouter parameterized with its
address as the fallback for every integration left at the zero address.
Requires compiled artifacts under out/ and PRIVATE_KEY in the environment.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd.Context(), cmd, args)
		},
	}
	return cmd
}

func runDeploy(ctx context.Context, cmd *cobra.Command, args []string) error {
	// .env must be loaded before parsing: flag defaults fall back to env.
	config.LoadEnvFiles(".")

	cfg, err := config.Parse(args)
	if errors.Is(err, config.ErrUsage) {
		fmt.Fprintln(cmd.ErrOrStderr(), cmd.UseLine())
		fmt.Fprintln(cmd.ErrOrStderr(), config.Usage())
		return err
	}
	if err != nil {
		return err
	}

	log, err := logging.New("logs", cfg.ChainName)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	if err := deployAll(ctx, cfg, log); err != nil {
		log.RecordError("%v", err)
		return err
	}
	return nil
}

func deployAll(ctx context.Context, cfg *config.Config, log *logging.RunLog) error {
	key, from, err := config.PrivateKeyFromEnv()
	if err != nil {
		return err
	}

	if !cfg.NonInteractive {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Deploy UnsupportedProtocol and UniversalRouter to %s", cfg.ChainName),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			return fmt.Errorf("aborted")
		}
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	log.Step("Connecting to %s (%s)", cfg.ChainName, cfg.RPCURL)

	client, err := chain.Dial(ctx, cfg.RPCURL, key)
	if err != nil {
		return err
	}
	defer client.Close()
	client.ShowProgress = !cfg.NonInteractive

	balance, err := client.Balance(ctx)
	if err != nil {
		return err
	}
	log.Info("Chain ID: %s", client.ChainID())
	log.Info("Deployer: %s", from.Hex())
	log.Info("Balance: %s wei", balance)

	seq := deployer.New(cfg, client, forge.NewRepository("."), log)
	result, err := seq.Run(ctx)
	if err != nil {
		return err
	}

	entries := [][2]string{
		{"Chain", cfg.ChainName},
		{"UnsupportedProtocol", result.UnsupportedProtocol.Address.Hex()},
		{"UniversalRouter", result.UniversalRouter.Address.Hex()},
		{"Block", fmt.Sprintf("%d", result.UniversalRouter.BlockNumber)},
	}
	log.Summary("Deployment complete", lo.Map(entries, func(e [2]string, _ int) logging.SummaryRow {
		return logging.SummaryRow{Label: e[0], Value: e[1]}
	}))

	return nil
}
