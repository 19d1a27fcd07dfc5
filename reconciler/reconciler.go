// Package reconciler drives one managed resource toward its declared
// configuration: validate the declared attributes, resolve the actual
// state from the device, compute the changeset, and dispatch the
// per-attribute setters. One Engine performs exactly one pass for one
// resource and is then discarded.
package reconciler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/crmarques/eosport/attrs"
	"github.com/crmarques/eosport/config"
	"github.com/crmarques/eosport/eapi"
)

// Conn is the session surface the engine needs from the remote
// connector. *eapi.Session satisfies it; tests substitute fakes.
type Conn interface {
	Enable(ctx context.Context, cmds []string) ([]map[string]any, error)
	Config(ctx context.Context, cmds []string) error
	Version() eapi.Version
	Close()
}

// Dialer opens the session for the invocation. The default dialer wraps
// eapi.Connect.
type Dialer func(ctx context.Context, cfg config.Connection, logger zerolog.Logger) (Conn, error)

// ValidatorFunc canonicalizes one declared attribute value.
type ValidatorFunc func(value attrs.Value) (attrs.Value, error)

// SetterFunc applies one attribute of the desired map to the device.
type SetterFunc func(ctx context.Context, conn Conn, identity string, desired attrs.Map) error

// ResolveFunc fetches and canonicalizes the actual state of the
// resource, including the attrs.StateKey presence marker.
type ResolveFunc func(ctx context.Context, conn Conn, identity string) (attrs.Map, error)

// LifecycleFunc creates or removes the resource on the device.
type LifecycleFunc func(ctx context.Context, conn Conn, identity string) error

// TransitionFunc moves the resource into a caller-defined named state.
type TransitionFunc func(ctx context.Context, conn Conn, identity string, desired attrs.Map) error

// Registry binds a resource kind to the engine: how to resolve its
// actual state, how to validate and apply each attribute, and which
// lifecycle transitions exist. The registry is fixed once the engine is
// constructed.
type Registry struct {
	Validators  map[string]ValidatorFunc
	Setters     map[string]SetterFunc
	Resolve     ResolveFunc
	Create      LifecycleFunc
	Remove      LifecycleFunc
	Transitions map[string]TransitionFunc
}

// Spec describes one reconciliation invocation.
type Spec struct {
	// Identity names the target resource on the device.
	Identity string

	// DesiredState is present, absent, or a key of
	// Registry.Transitions. Ignored when Stateful is false.
	DesiredState string

	// Declared holds the raw declared attributes; New canonicalizes
	// them through the registered validators.
	Declared attrs.Map

	Registry Registry

	// Stateful enables presence tracking. When false the engine goes
	// straight to attribute reconciliation.
	Stateful bool

	// CheckMode computes the outcome without touching the device.
	CheckMode bool

	// Debug attaches a snapshot of declared/resolved state and
	// connector metadata to the outcome.
	Debug bool

	// Connection is owned by the engine for the invocation lifetime.
	Connection config.Connection

	// Dial is optional; the default wraps eapi.Connect.
	Dial Dialer

	Logger zerolog.Logger
}
