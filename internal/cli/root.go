package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// GlobalFlags carries the persistent flags shared by every subcommand.
type GlobalFlags struct {
	ConnectionsFile string
	Logging         bool
	Debug           bool
}

func NewRootCommand(deps Dependencies) *cobra.Command {
	var globalFlags GlobalFlags

	root := &cobra.Command{
		Use:   "eosport",
		Short: "Drive Arista EOS switchport configuration toward a declared state",
		Long: `eosport reconciles one layer-2 switchport against a declared
configuration over the EOS command API. It queries the current state,
computes the difference, and applies only the commands required to
converge, making repeated runs no-ops.`,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&globalFlags.ConnectionsFile, "connections-file", "",
		"path to the connection profile catalog (default ~/.eosport/connections.yaml)")
	root.PersistentFlags().BoolVar(&globalFlags.Logging, "logging", true,
		"emit structured log events to stderr")
	root.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false,
		"include internal state snapshots in the result")

	root.AddCommand(
		newReconcileCommand(deps, &globalFlags),
		newShowCommand(deps, &globalFlags),
		newConnectionsCommand(deps, &globalFlags),
		newVersionCommand(deps),
	)

	return root
}

// newLogger builds the injected logger for one invocation. With logging
// disabled every event is dropped.
func newLogger(flags *GlobalFlags) zerolog.Logger {
	if !flags.Logging {
		return zerolog.Nop()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}
