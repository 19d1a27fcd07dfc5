package reconciler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/crmarques/eosport/attrs"
	"github.com/crmarques/eosport/config"
	"github.com/crmarques/eosport/eapi"
	"github.com/crmarques/eosport/faults"
)

// Engine performs one reconciliation pass. Construct with New, run with
// Run, discard.
type Engine struct {
	spec         Spec
	desired      attrs.Map
	validStates  map[string]struct{}
	invocationID string
	logger       zerolog.Logger

	instance       attrs.Map
	instanceLoaded bool

	outcome   Outcome
	finalized bool
}

// New validates the spec and the declared attributes and returns an
// engine with a closed set of valid desired states. Validator failures
// abort here, before any remote interaction.
func New(spec Spec) (*Engine, error) {
	if spec.Identity == "" {
		return nil, validationError("resource identity is required", nil)
	}
	if spec.Registry.Resolve == nil {
		return nil, unsupportedError("registry does not define an instance resolver", nil)
	}
	if spec.Dial == nil {
		spec.Dial = defaultDialer
	}

	invocationID := uuid.NewString()
	logger := spec.Logger.With().
		Str("invocation_id", invocationID).
		Str("name", spec.Identity).
		Logger()

	engine := &Engine{
		spec:         spec,
		validStates:  validStateSet(spec.Registry),
		invocationID: invocationID,
		logger:       logger,
		outcome:      Outcome{Changes: attrs.Map{}},
	}

	if spec.Stateful {
		if _, ok := engine.validStates[spec.DesiredState]; !ok {
			return nil, validationError(
				fmt.Sprintf("invalid desired state %q", spec.DesiredState), nil)
		}
	}

	desired, err := engine.validate(spec.Declared)
	if err != nil {
		return nil, err
	}
	engine.desired = desired

	return engine, nil
}

func defaultDialer(ctx context.Context, cfg config.Connection, logger zerolog.Logger) (Conn, error) {
	return eapi.Connect(ctx, cfg, logger)
}

func validStateSet(registry Registry) map[string]struct{} {
	states := map[string]struct{}{
		attrs.StatePresent: {},
		attrs.StateAbsent:  {},
	}
	for name := range registry.Transitions {
		states[name] = struct{}{}
	}
	return states
}

// validate canonicalizes the declared attributes through the registered
// validators. Attributes without a validator pass through unchanged;
// valueless attributes are skipped.
func (e *Engine) validate(declared attrs.Map) (attrs.Map, error) {
	desired := declared.Clone()
	if desired == nil {
		desired = attrs.Map{}
	}

	for _, key := range desired.Keys() {
		value := desired[key]
		if value == nil {
			continue
		}

		validator, registered := e.spec.Registry.Validators[key]
		if !registered {
			continue
		}

		canonical, err := validator(value)
		if err != nil {
			return nil, faults.NewTypedError(
				faults.ValidationError,
				fmt.Sprintf("invalid value for %q", key),
				err,
			)
		}
		desired[key] = canonical
	}

	return desired, nil
}

// Desired exposes the validated desired attribute map.
func (e *Engine) Desired() attrs.Map {
	return e.desired
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func unsupportedError(message string, cause error) error {
	return faults.NewTypedError(faults.UnsupportedError, message, cause)
}
