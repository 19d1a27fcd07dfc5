package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// newConnectionsCommand lists the connection profiles in the catalog.
// Passwords are never printed.
func newConnectionsCommand(deps Dependencies, globalFlags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "connections",
		Short: "List the connection profiles in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			connections := deps.Connections
			if connections == nil {
				connections = newConnectionService(globalFlags)
			}

			profiles, err := connections.ListConnections(command.Context())
			if err != nil {
				return err
			}

			type profileView struct {
				Name      string `json:"name"`
				Host      string `json:"host,omitempty"`
				Username  string `json:"username,omitempty"`
				Transport string `json:"transport,omitempty"`
				Port      int    `json:"port,omitempty"`
			}
			views := make([]profileView, 0, len(profiles))
			for _, profile := range profiles {
				views = append(views, profileView{
					Name:      profile.Name,
					Host:      profile.Host,
					Username:  profile.Username,
					Transport: profile.Transport,
					Port:      profile.Port,
				})
			}

			encoder := json.NewEncoder(command.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(views)
		},
	}
}
