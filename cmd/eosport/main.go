package main

import (
	"os"

	"github.com/crmarques/eosport/internal/cli"
)

// version is stamped by the build with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	deps := cli.Dependencies{Version: version}
	if err := cli.Execute(deps); err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
