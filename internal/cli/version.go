package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the eosport version",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			version := deps.Version
			if version == "" {
				version = "dev"
			}
			_, err := fmt.Fprintln(command.OutOrStdout(), version)
			return err
		},
	}
}
