package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release identifier. Release builds override it with
// -ldflags "-X github.com/evm-tools/router-deploy/internal/cli.Version=...".
var Version = "dev"

// NewVersionCmd creates the command reporting the build version.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the router-deploy version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "router-deploy version %s\n", Version)
		},
	}
}
