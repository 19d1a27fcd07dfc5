package file

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crmarques/eosport/config"
	"github.com/crmarques/eosport/faults"
)

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}

func decodeCatalog(data []byte) (config.ConnectionCatalog, error) {
	var catalog config.ConnectionCatalog

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil {
		return config.ConnectionCatalog{}, validationError("invalid connection catalog yaml", err)
	}

	seen := make(map[string]struct{}, len(catalog.Connections))
	for _, connection := range catalog.Connections {
		if connection.Name == "" {
			return config.ConnectionCatalog{}, validationError("connection profile is missing a name", nil)
		}
		if _, duplicate := seen[connection.Name]; duplicate {
			return config.ConnectionCatalog{}, validationError(
				"connection catalog defines profile "+connection.Name+" twice", nil)
		}
		seen[connection.Name] = struct{}{}
	}

	return catalog, nil
}

func resolveCatalogPath(explicitPath string) (string, error) {
	path := explicitPath
	if path == "" {
		path = os.Getenv(config.CatalogFileEnvVar)
	}
	if path == "" {
		path = config.DefaultCatalogPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", internalError("failed to resolve user home directory", err)
	}

	if path == "~" {
		path = homeDir
	} else if strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir, strings.TrimPrefix(path, "~/"))
	}

	cleanPath := filepath.Clean(path)
	if cleanPath == "." {
		return "", validationError("connection catalog path is invalid", errors.New("resolved to current directory"))
	}
	if !filepath.IsAbs(cleanPath) {
		cleanPath = filepath.Join(homeDir, cleanPath)
	}

	return cleanPath, nil
}
