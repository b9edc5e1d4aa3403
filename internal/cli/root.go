package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for router-deploy.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "router-deploy",
		Short: "Deploy the UniversalRouter contract stack from Foundry artifacts",
		Long: `router-deploy deploys UnsupportedProtocol followed by UniversalRouter
onto an EVM chain, wiring any omitted protocol integration (V2, V4) to the
UnsupportedProtocol fallback so accidental calls revert.`,
		// The entrypoint prints the error exactly once; cobra must not
		// print it a second time.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewDeployCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the CLI and returns the first error encountered.
func Execute() error {
	return NewRootCmd().Execute()
}
