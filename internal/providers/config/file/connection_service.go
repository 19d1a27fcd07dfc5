package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/crmarques/eosport/config"
	"github.com/crmarques/eosport/faults"
)

var _ config.ConnectionService = (*FileConnectionService)(nil)

// FileConnectionService resolves connection profiles from a yaml catalog
// on disk. A missing catalog is not an error: overrides supplied on the
// command line can describe the endpoint on their own.
type FileConnectionService struct {
	catalogPath string
}

func NewFileConnectionService(path string) *FileConnectionService {
	return &FileConnectionService{catalogPath: path}
}

func (s *FileConnectionService) ListConnections(_ context.Context) ([]config.Connection, error) {
	catalog, _, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}
	return catalog.Connections, nil
}

func (s *FileConnectionService) ResolveConnection(
	_ context.Context,
	selection config.ConnectionSelection,
) (config.Connection, error) {
	catalog, found, err := s.loadCatalog()
	if err != nil {
		return config.Connection{}, err
	}

	name := selection.Name
	if name == "" {
		name = config.DefaultConnectionName
	}

	resolved := config.Connection{Name: name}
	if idx := findConnectionIndex(catalog.Connections, name); idx >= 0 {
		resolved = catalog.Connections[idx]
	} else if found && name != config.DefaultConnectionName {
		return config.Connection{}, validationError(
			fmt.Sprintf("connection %q not found in catalog", name), nil)
	}

	resolved = applyOverrides(resolved, selection.Overrides)

	if resolved.Transport == "" {
		return config.Connection{}, validationError("connection must define a transport", nil)
	}
	if !config.ValidTransport(resolved.Transport) {
		return config.Connection{}, validationError(
			fmt.Sprintf("unsupported transport %q", resolved.Transport), nil)
	}

	return resolved, nil
}

func (s *FileConnectionService) loadCatalog() (config.ConnectionCatalog, bool, error) {
	path, err := resolveCatalogPath(s.catalogPath)
	if err != nil {
		return config.ConnectionCatalog{}, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.ConnectionCatalog{}, false, nil
		}
		return config.ConnectionCatalog{}, false, faults.NewTypedError(
			faults.InternalError, "failed to read connection catalog", err)
	}

	catalog, err := decodeCatalog(data)
	if err != nil {
		return config.ConnectionCatalog{}, false, err
	}
	return catalog, true, nil
}

func findConnectionIndex(connections []config.Connection, name string) int {
	for idx, connection := range connections {
		if connection.Name == name {
			return idx
		}
	}
	return -1
}

func applyOverrides(connection config.Connection, overrides config.Overrides) config.Connection {
	if overrides.Host != "" {
		connection.Host = overrides.Host
	}
	if overrides.Username != "" {
		connection.Username = overrides.Username
	}
	if overrides.Password != "" {
		connection.Password = overrides.Password
	}
	if overrides.Transport != "" {
		connection.Transport = overrides.Transport
	}
	if overrides.Port != 0 {
		connection.Port = overrides.Port
	}
	return connection
}
