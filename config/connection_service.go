package config

import "context"

// ConnectionResolver resolves a named connection profile, applying any
// per-invocation overrides. An unknown profile name is a validation
// failure unless overrides alone fully describe the endpoint.
type ConnectionResolver interface {
	ResolveConnection(ctx context.Context, selection ConnectionSelection) (Connection, error)
}

// ConnectionLister enumerates the profiles held by the backing catalog.
type ConnectionLister interface {
	ListConnections(ctx context.Context) ([]Connection, error)
}

type ConnectionService interface {
	ConnectionResolver
	ConnectionLister
}
