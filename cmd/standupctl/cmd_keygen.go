package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arnavshah/standup-api-go/pkg/auth"
	"github.com/spf13/cobra"
)

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen [user-id]",
		Short: "Sign an API key with API_MASTER_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("API_MASTER_SECRET")
			if secret == "" {
				return errors.New("API_MASTER_SECRET is not set")
			}

			key := auth.New("", secret).GenerateHMACKey(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Generated Key for %s:\n%s\n", args[0], key)
			return nil
		},
	}
}
