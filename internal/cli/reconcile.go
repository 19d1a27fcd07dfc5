package cli

import (
	"github.com/spf13/cobra"

	"github.com/crmarques/eosport/attrs"
	"github.com/crmarques/eosport/config"
	"github.com/crmarques/eosport/reconciler"
	"github.com/crmarques/eosport/switchport"
)

type connectionFlags struct {
	Connection string
	Host       string
	Username   string
	Password   string
	Transport  string
	Port       int
}

func bindConnectionFlags(command *cobra.Command, flags *connectionFlags) {
	command.Flags().StringVar(&flags.Connection, "connection", config.DefaultConnectionName,
		"named connection profile from the catalog")
	command.Flags().StringVar(&flags.Host, "host", "", "device hostname or address")
	command.Flags().StringVar(&flags.Username, "username", "", "command api username")
	command.Flags().StringVar(&flags.Password, "password", "", "command api password")
	command.Flags().StringVar(&flags.Transport, "transport", "", "transport: socket, http_local, http, https")
	command.Flags().IntVar(&flags.Port, "port", 0, "command api port (0 selects the transport default)")
}

func newReconcileCommand(deps Dependencies, globalFlags *GlobalFlags) *cobra.Command {
	var (
		name              string
		state             string
		mode              string
		accessVLAN        int
		trunkNativeVLAN   int
		trunkAllowedVLANs string
		trunkGroups       string
		check             bool
		connFlags         connectionFlags
	)

	command := &cobra.Command{
		Use:   "reconcile",
		Short: "Converge one switchport to the declared configuration",
		Example: `  # Ensure Ethernet1 is an access port on vlan 10
  eosport reconcile --name Ethernet1 --mode access --access-vlan 10

  # Ensure Ethernet12 is a trunk port carrying vlans 1-3 and 5
  eosport reconcile --name Ethernet12 --mode trunk --trunk-allowed-vlans 1-3,5

  # Revert Ethernet5 to a routed port
  eosport reconcile --name Ethernet5 --state absent`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			logger := newLogger(globalFlags)

			connection, err := resolveConnection(command, deps, globalFlags, &connFlags)
			if err != nil {
				return err
			}

			declared := attrs.Map{}
			if command.Flags().Changed("mode") {
				declared[switchport.AttrMode] = mode
			}
			if command.Flags().Changed("access-vlan") {
				declared[switchport.AttrAccessVLAN] = accessVLAN
			}
			if command.Flags().Changed("trunk-native-vlan") {
				declared[switchport.AttrTrunkNativeVLAN] = trunkNativeVLAN
			}
			if command.Flags().Changed("trunk-allowed-vlans") {
				declared[switchport.AttrTrunkAllowedVLANs] = trunkAllowedVLANs
			}
			if command.Flags().Changed("trunk-groups") {
				declared[switchport.AttrTrunkGroups] = trunkGroups
			}

			engine, err := reconciler.New(reconciler.Spec{
				Identity:     name,
				DesiredState: state,
				Declared:     declared,
				Registry:     switchport.Registry(),
				Stateful:     true,
				CheckMode:    check,
				Debug:        globalFlags.Debug,
				Connection:   connection,
				Logger:       logger,
			})
			if err != nil {
				return err
			}

			outcome, err := engine.Run(command.Context())
			if err != nil {
				return err
			}

			return writeOutcome(command.OutOrStdout(), outcome)
		},
	}

	command.Flags().StringVar(&name, "name", "",
		"full interface name, for example Ethernet1 (required)")
	command.Flags().StringVar(&state, "state", attrs.StatePresent,
		"desired presence: present or absent")
	command.Flags().StringVar(&mode, "mode", "", "switchport mode: access or trunk")
	command.Flags().IntVar(&accessVLAN, "access-vlan", 0, "access vlan id (1-4094)")
	command.Flags().IntVar(&trunkNativeVLAN, "trunk-native-vlan", 0, "trunk native vlan id (1-4094)")
	command.Flags().StringVar(&trunkAllowedVLANs, "trunk-allowed-vlans", "",
		"comma list of vlan ids or ranges allowed on the trunk, for example 1-3,5")
	command.Flags().StringVar(&trunkGroups, "trunk-groups", "",
		"comma list of trunk group names")
	command.Flags().BoolVar(&check, "check", false,
		"report the changes that would be made without applying them")
	bindConnectionFlags(command, &connFlags)
	_ = command.MarkFlagRequired("name")

	return command
}

// resolveConnection merges the named profile with flag overrides,
// prompting for the password when a username is set without one and
// stdin is a terminal.
func resolveConnection(
	command *cobra.Command,
	deps Dependencies,
	globalFlags *GlobalFlags,
	flags *connectionFlags,
) (config.Connection, error) {
	connections := deps.Connections
	if connections == nil {
		connections = newConnectionService(globalFlags)
	}

	password := flags.Password
	if password == "" && flags.Username != "" && isInteractive() {
		prompted, err := promptPassword(command, flags.Username)
		if err != nil {
			return config.Connection{}, err
		}
		password = prompted
	}

	return connections.ResolveConnection(command.Context(), config.ConnectionSelection{
		Name: flags.Connection,
		Overrides: config.Overrides{
			Host:      flags.Host,
			Username:  flags.Username,
			Password:  password,
			Transport: flags.Transport,
			Port:      flags.Port,
		},
	})
}
