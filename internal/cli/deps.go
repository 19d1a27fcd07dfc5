package cli

import (
	"github.com/crmarques/eosport/config"
	fileconfig "github.com/crmarques/eosport/internal/providers/config/file"
)

func newConnectionService(globalFlags *GlobalFlags) config.ConnectionService {
	return fileconfig.NewFileConnectionService(globalFlags.ConnectionsFile)
}
