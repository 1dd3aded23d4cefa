// Command standupctl computes standup reading assignments from a YAML roster
// without a running server, and signs API keys for the HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/standup-api-go/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "standupctl",
		Short: "Standup rotation tooling",
		Long: `standupctl works with the same rotation rules as the standup API.

Examples:
  standupctl pairings --roster roster.yaml --date 2024-01-01
  standupctl pairings --roster roster.yaml --week --json
  standupctl keygen slackbot`,
		SilenceUsage: true,
	}

	root.AddCommand(newPairingsCmd(), newKeygenCmd())
	return root
}

func main() {
	config.LoadEnv()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
