package cli

import (
	"github.com/spf13/cobra"

	"github.com/crmarques/eosport/eapi"
	"github.com/crmarques/eosport/reconciler"
	"github.com/crmarques/eosport/switchport"
)

// newShowCommand resolves and prints the current switchport instance
// without mutating anything.
func newShowCommand(deps Dependencies, globalFlags *GlobalFlags) *cobra.Command {
	var (
		name      string
		connFlags connectionFlags
	)

	command := &cobra.Command{
		Use:   "show",
		Short: "Print the current state of one switchport",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			logger := newLogger(globalFlags)

			connection, err := resolveConnection(command, deps, globalFlags, &connFlags)
			if err != nil {
				return err
			}

			session, err := eapi.Connect(command.Context(), connection, logger)
			if err != nil {
				return err
			}
			defer session.Close()

			instance, err := switchport.Resolve(command.Context(), session, name)
			if err != nil {
				return err
			}

			return writeOutcome(command.OutOrStdout(), reconciler.Outcome{
				Changes:  map[string]any{},
				Instance: instance,
			})
		},
	}

	command.Flags().StringVar(&name, "name", "",
		"full interface name, for example Ethernet1 (required)")
	bindConnectionFlags(command, &connFlags)
	_ = command.MarkFlagRequired("name")

	return command
}
