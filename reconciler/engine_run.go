package reconciler

import (
	"context"
	"fmt"

	"github.com/crmarques/eosport/attrs"
)

// Run performs the single reconciliation pass: dial, drive the presence
// state machine, reconcile attributes, finalize. The returned Outcome is
// meaningful even when err is non-nil: changes applied before a setter
// failure stay recorded, there is no rollback.
func (e *Engine) Run(ctx context.Context) (Outcome, error) {
	conn, err := e.spec.Dial(ctx, e.spec.Connection, e.logger)
	if err != nil {
		return e.outcome, err
	}
	defer conn.Close()

	switch {
	case !e.spec.Stateful || e.spec.DesiredState == attrs.StatePresent:
		err = e.converge(ctx, conn)
	case e.spec.DesiredState == attrs.StateAbsent:
		err = e.ensureAbsent(ctx, conn)
	default:
		err = e.transition(ctx, conn)
	}
	if err != nil {
		return e.outcome, err
	}

	// The pass is over; anything cached is suspect after mutations.
	e.Invalidate()
	if e.spec.Debug {
		if snapshotErr := e.attachDebugSnapshot(ctx, conn); snapshotErr != nil {
			return e.outcome, snapshotErr
		}
	}

	return e.finalize(), nil
}

// converge drives the resource to present and reconciles attributes.
func (e *Engine) converge(ctx context.Context, conn Conn) error {
	instance, err := e.Instance(ctx, conn)
	if err != nil {
		return err
	}

	if e.spec.Stateful && instance.State() == attrs.StateAbsent {
		if err := e.create(ctx, conn); err != nil {
			return err
		}
		e.outcome.Changed = true
		e.Invalidate()
		instance, err = e.Instance(ctx, conn)
		if err != nil {
			return err
		}
	}

	changeset := Diff(e.desired, instance)
	if len(changeset) == 0 {
		e.logger.Info().Msg("resource already converged")
		return nil
	}

	return e.applyChangeset(ctx, conn, changeset)
}

// applyChangeset dispatches setters in sorted key order. Every change is
// recorded before its setter runs; the first setter failure aborts the
// rest of the pass and earlier changes remain both applied and recorded.
// A change without a registered setter is recorded but skipped
// (skip-but-report).
func (e *Engine) applyChangeset(ctx context.Context, conn Conn, changeset attrs.Map) error {
	for _, key := range changeset.Keys() {
		value := changeset[key]
		e.outcome.Changes[key] = value
		e.outcome.Changed = true

		setter, registered := e.spec.Registry.Setters[key]
		if !registered {
			e.logger.Info().Str("attr", key).Msg("no setter registered, change reported only")
			continue
		}
		if e.spec.CheckMode {
			continue
		}

		e.logger.Info().Str("attr", key).Interface("value", value).Msg("applying attribute")
		if err := setter(ctx, conn, e.spec.Identity, e.desired); err != nil {
			e.logger.Error().Err(err).Str("attr", key).Msg("setter failed")
			return err
		}
		e.Invalidate()
	}
	return nil
}

// ensureAbsent removes the resource when the device still has it.
// Attribute reconciliation is skipped entirely.
func (e *Engine) ensureAbsent(ctx context.Context, conn Conn) error {
	instance, err := e.Instance(ctx, conn)
	if err != nil {
		return err
	}
	if instance.State() != attrs.StatePresent {
		e.logger.Info().Msg("resource already absent")
		return nil
	}

	if e.spec.Registry.Remove == nil {
		return unsupportedError("registry does not define remove", nil)
	}
	if !e.spec.CheckMode {
		e.logger.Info().Msg("removing resource")
		if err := e.spec.Registry.Remove(ctx, conn, e.spec.Identity); err != nil {
			return err
		}
		e.Invalidate()
	}
	e.outcome.Changed = true
	return nil
}

// transition handles caller-extensible named states beyond
// present/absent.
func (e *Engine) transition(ctx context.Context, conn Conn) error {
	instance, err := e.Instance(ctx, conn)
	if err != nil {
		return err
	}
	if instance.State() == e.spec.DesiredState {
		return nil
	}

	handler, registered := e.spec.Registry.Transitions[e.spec.DesiredState]
	if !registered {
		return unsupportedError(
			fmt.Sprintf("no transition registered for state %q", e.spec.DesiredState), nil)
	}

	if !e.spec.CheckMode {
		e.logger.Info().Str("state", e.spec.DesiredState).Msg("invoking state transition")
		if err := handler(ctx, conn, e.spec.Identity, e.desired); err != nil {
			return err
		}
		e.Invalidate()
	}
	e.outcome.Changed = true
	return nil
}

func (e *Engine) create(ctx context.Context, conn Conn) error {
	if e.spec.Registry.Create == nil {
		return unsupportedError("registry does not define create", nil)
	}
	if e.spec.CheckMode {
		return nil
	}
	e.logger.Info().Msg("creating resource")
	return e.spec.Registry.Create(ctx, conn, e.spec.Identity)
}

// attachDebugSnapshot re-resolves the final state and records it with
// the declared input and connector metadata. Only runs when debug output
// was requested: the extra query is otherwise wasted latency.
func (e *Engine) attachDebugSnapshot(ctx context.Context, conn Conn) error {
	instance, err := e.Instance(ctx, conn)
	if err != nil {
		return err
	}

	version := conn.Version()
	e.outcome.Instance = instance
	e.outcome.Debug = map[string]any{
		"invocation_id": e.invocationID,
		"desired_state": e.desired,
		"current_state": instance,
		"eos_version":   version.Release,
		"eos_model":     version.Model,
		"stateful":      e.spec.Stateful,
		"check_mode":    e.spec.CheckMode,
	}
	return nil
}
