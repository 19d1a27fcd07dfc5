package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/crmarques/eosport/config"
	"github.com/crmarques/eosport/faults"
)

type Dependencies struct {
	Connections config.ConnectionService

	// Version is the build version stamped into the binary.
	Version string
}

func Execute(deps Dependencies) error {
	root := NewRootCommand(deps)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(root.ErrOrStderr(), renderFailure(err))
		return err
	}
	return nil
}

// ExitCodeForError maps the fault taxonomy to process exit codes so
// scripted callers can distinguish failure classes.
func ExitCodeForError(err error) int {
	if err == nil {
		return 0
	}

	var typedErr *faults.TypedError
	if !errors.As(err, &typedErr) {
		return 1
	}

	switch typedErr.Category {
	case faults.ValidationError:
		return 1
	case faults.ConnectionError:
		return 2
	case faults.AuthenticationError:
		return 3
	case faults.CommandError:
		return 4
	case faults.UnsupportedError:
		return 5
	default:
		return 6
	}
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
