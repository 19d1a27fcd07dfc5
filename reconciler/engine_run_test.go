package reconciler

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/crmarques/eosport/attrs"
	"github.com/crmarques/eosport/config"
	"github.com/crmarques/eosport/eapi"
	"github.com/crmarques/eosport/faults"
)

type fakeConn struct{}

func (f *fakeConn) Enable(context.Context, []string) ([]map[string]any, error) { return nil, nil }
func (f *fakeConn) Config(context.Context, []string) error                     { return nil }
func (f *fakeConn) Version() eapi.Version {
	return eapi.Version{Release: "4.15.2F", Model: "vEOS"}
}
func (f *fakeConn) Close() {}

// fakeDevice simulates the resource kind: an in-memory instance plus
// call counters for every registry operation.
type fakeDevice struct {
	present      bool
	device       attrs.Map
	resolveCalls int
	createCalls  int
	removeCalls  int
	setterCalls  []string
	setterErrs   map[string]error
}

func (d *fakeDevice) registry(setterKeys ...string) Registry {
	setters := make(map[string]SetterFunc, len(setterKeys))
	for _, key := range setterKeys {
		key := key
		setters[key] = func(_ context.Context, _ Conn, _ string, desired attrs.Map) error {
			if err := d.setterErrs[key]; err != nil {
				return err
			}
			d.setterCalls = append(d.setterCalls, key)
			d.device[key] = desired[key]
			return nil
		}
	}

	return Registry{
		Setters: setters,
		Resolve: func(context.Context, Conn, string) (attrs.Map, error) {
			d.resolveCalls++
			if !d.present {
				return attrs.Map{attrs.StateKey: attrs.StateAbsent}, nil
			}
			resolved := d.device.Clone()
			resolved[attrs.StateKey] = attrs.StatePresent
			return resolved, nil
		},
		Create: func(context.Context, Conn, string) error {
			d.createCalls++
			d.present = true
			return nil
		},
		Remove: func(context.Context, Conn, string) error {
			d.removeCalls++
			d.present = false
			return nil
		},
	}
}

func fakeDial(ctx context.Context, cfg config.Connection, logger zerolog.Logger) (Conn, error) {
	return &fakeConn{}, nil
}

func newTestEngine(t *testing.T, spec Spec) *Engine {
	t.Helper()
	spec.Identity = "Ethernet1"
	spec.Logger = zerolog.Nop()
	if spec.Dial == nil {
		spec.Dial = fakeDial
	}
	engine, err := New(spec)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return engine
}

func TestRunIsIdempotentWhenConverged(t *testing.T) {
	device := &fakeDevice{present: true, device: attrs.Map{"mode": "access", "access_vlan": 10}}

	engine := newTestEngine(t, Spec{
		DesiredState: attrs.StatePresent,
		Declared:     attrs.Map{"mode": "access", "access_vlan": 10},
		Registry:     device.registry("mode", "access_vlan"),
		Stateful:     true,
	})

	outcome, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Changed {
		t.Fatalf("expected changed=false, got %+v", outcome)
	}
	if len(outcome.Changes) != 0 {
		t.Fatalf("expected empty changeset, got %#v", outcome.Changes)
	}
	if device.createCalls+device.removeCalls+len(device.setterCalls) != 0 {
		t.Fatalf("expected zero mutation calls, got %+v", device)
	}
}

func TestRunCreatesAbsentResource(t *testing.T) {
	device := &fakeDevice{device: attrs.Map{}}

	engine := newTestEngine(t, Spec{
		DesiredState: attrs.StatePresent,
		Declared:     attrs.Map{"mode": "access"},
		Registry:     device.registry("mode"),
		Stateful:     true,
	})

	outcome, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if device.createCalls != 1 {
		t.Fatalf("expected exactly one create, got %d", device.createCalls)
	}
	if device.resolveCalls != 2 {
		t.Fatalf("expected cache invalidation to force a second resolve, got %d", device.resolveCalls)
	}
	if !outcome.Changed {
		t.Fatalf("expected changed=true")
	}
	if !reflect.DeepEqual(device.setterCalls, []string{"mode"}) {
		t.Fatalf("expected attribute pass after create, got %v", device.setterCalls)
	}
}

func TestRunRemovesPresentResource(t *testing.T) {
	device := &fakeDevice{present: true, device: attrs.Map{"mode": "access"}}

	engine := newTestEngine(t, Spec{
		DesiredState: attrs.StateAbsent,
		Declared:     attrs.Map{"mode": "trunk"},
		Registry:     device.registry("mode"),
		Stateful:     true,
	})

	outcome, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if device.removeCalls != 1 {
		t.Fatalf("expected exactly one remove, got %d", device.removeCalls)
	}
	if len(device.setterCalls) != 0 {
		t.Fatalf("attribute setters must not run on removal, got %v", device.setterCalls)
	}
	if !outcome.Changed {
		t.Fatalf("expected changed=true")
	}
}

func TestRunAbsentIsNoOpWhenAlreadyAbsent(t *testing.T) {
	device := &fakeDevice{device: attrs.Map{}}

	engine := newTestEngine(t, Spec{
		DesiredState: attrs.StateAbsent,
		Declared:     attrs.Map{},
		Registry:     device.registry(),
		Stateful:     true,
	})

	outcome, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Changed || device.removeCalls != 0 {
		t.Fatalf("expected no-op, got %+v device %+v", outcome, device)
	}
}

func TestRunPartialApplyOnSetterFailure(t *testing.T) {
	device := &fakeDevice{
		present:    true,
		device:     attrs.Map{"access_vlan": 1, "mode": "access"},
		setterErrs: map[string]error{"mode": faults.NewTypedError(faults.CommandError, "rejected", nil)},
	}

	engine := newTestEngine(t, Spec{
		DesiredState: attrs.StatePresent,
		Declared:     attrs.Map{"access_vlan": 10, "mode": "trunk"},
		Registry:     device.registry("access_vlan", "mode"),
		Stateful:     true,
	})

	outcome, err := engine.Run(context.Background())
	if !faults.IsCategory(err, faults.CommandError) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	// access_vlan sorts before mode, applied first and kept.
	if !reflect.DeepEqual(device.setterCalls, []string{"access_vlan"}) {
		t.Fatalf("expected only the first setter to run, got %v", device.setterCalls)
	}
	if !outcome.Changed {
		t.Fatalf("expected changed=true after partial apply")
	}
	if outcome.Changes["access_vlan"] == nil {
		t.Fatalf("applied change must stay recorded, got %#v", outcome.Changes)
	}
	if device.device["mode"] != "access" {
		t.Fatalf("failed setter must not mutate the device")
	}
}

func TestRunFatalDialAbortsBeforeMutation(t *testing.T) {
	device := &fakeDevice{device: attrs.Map{}}

	engine := newTestEngine(t, Spec{
		DesiredState: attrs.StatePresent,
		Declared:     attrs.Map{"mode": "access"},
		Registry:     device.registry("mode"),
		Stateful:     true,
		Dial: func(context.Context, config.Connection, zerolog.Logger) (Conn, error) {
			return nil, faults.NewTypedError(faults.ConnectionError, "unable to connect", nil)
		},
	})

	_, err := engine.Run(context.Background())
	if !faults.IsCategory(err, faults.ConnectionError) {
		t.Fatalf("expected ConnectionError, got %v", err)
	}
	if device.resolveCalls+device.createCalls+len(device.setterCalls) != 0 {
		t.Fatalf("no registry operation may run after a dial failure, got %+v", device)
	}
}

func TestRunStatelessSkipsPresenceTracking(t *testing.T) {
	device := &fakeDevice{device: attrs.Map{}}

	engine := newTestEngine(t, Spec{
		Declared: attrs.Map{"mode": "trunk"},
		Registry: device.registry("mode"),
		Stateful: false,
	})

	outcome, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if device.createCalls != 0 {
		t.Fatalf("stateless mode must not create, got %d", device.createCalls)
	}
	if !reflect.DeepEqual(device.setterCalls, []string{"mode"}) {
		t.Fatalf("expected direct attribute reconciliation, got %v", device.setterCalls)
	}
	if !outcome.Changed {
		t.Fatalf("expected changed=true")
	}
}

func TestRunNamedStateTransition(t *testing.T) {
	device := &fakeDevice{present: true, device: attrs.Map{}}
	transitioned := 0

	registry := device.registry()
	registry.Transitions = map[string]TransitionFunc{
		"default": func(context.Context, Conn, string, attrs.Map) error {
			transitioned++
			return nil
		},
	}

	engine := newTestEngine(t, Spec{
		DesiredState: "default",
		Declared:     attrs.Map{},
		Registry:     registry,
		Stateful:     true,
	})

	outcome, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if transitioned != 1 || !outcome.Changed {
		t.Fatalf("expected one transition and changed=true, got %d %+v", transitioned, outcome)
	}
}

func TestNewRejectsUnknownDesiredState(t *testing.T) {
	device := &fakeDevice{device: attrs.Map{}}

	_, err := New(Spec{
		Identity:     "Ethernet1",
		DesiredState: "flashing",
		Declared:     attrs.Map{},
		Registry:     device.registry(),
		Stateful:     true,
		Logger:       zerolog.Nop(),
		Dial:         fakeDial,
	})
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected ValidationError for unknown state, got %v", err)
	}
}

func TestNewRunsValidatorsBeforeAnyRemoteCall(t *testing.T) {
	device := &fakeDevice{device: attrs.Map{}}
	registry := device.registry()
	registry.Validators = map[string]ValidatorFunc{
		"trunk_allowed_vlans": func(attrs.Value) (attrs.Value, error) {
			return nil, errors.New("bad range")
		},
	}

	_, err := New(Spec{
		Identity:     "Ethernet1",
		DesiredState: attrs.StatePresent,
		Declared:     attrs.Map{"trunk_allowed_vlans": "4095"},
		Registry:     registry,
		Stateful:     true,
		Logger:       zerolog.Nop(),
		Dial:         fakeDial,
	})
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if device.resolveCalls != 0 {
		t.Fatalf("validation failures must abort before remote interaction")
	}
}

func TestRunChangeWithoutSetterIsReportedNotApplied(t *testing.T) {
	device := &fakeDevice{present: true, device: attrs.Map{"mode": "access"}}

	engine := newTestEngine(t, Spec{
		DesiredState: attrs.StatePresent,
		Declared:     attrs.Map{"mode": "trunk"},
		Registry:     device.registry(), // no setters registered
		Stateful:     true,
	})

	outcome, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Changes["mode"] != "trunk" || !outcome.Changed {
		t.Fatalf("expected skip-but-report, got %+v", outcome)
	}
	if device.device["mode"] != "access" {
		t.Fatalf("device must not be mutated without a setter")
	}
}

func TestRunCheckModeComputesWithoutMutating(t *testing.T) {
	device := &fakeDevice{device: attrs.Map{}}

	engine := newTestEngine(t, Spec{
		DesiredState: attrs.StatePresent,
		Declared:     attrs.Map{"mode": "trunk"},
		Registry:     device.registry("mode"),
		Stateful:     true,
		CheckMode:    true,
	})

	outcome, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !outcome.Changed || outcome.Changes["mode"] != "trunk" {
		t.Fatalf("check mode must still report the pending changes, got %+v", outcome)
	}
	if device.createCalls+len(device.setterCalls) != 0 {
		t.Fatalf("check mode must not touch the device, got %+v", device)
	}
}

func TestRunDebugSnapshot(t *testing.T) {
	device := &fakeDevice{present: true, device: attrs.Map{"mode": "access"}}

	engine := newTestEngine(t, Spec{
		DesiredState: attrs.StatePresent,
		Declared:     attrs.Map{"mode": "access"},
		Registry:     device.registry("mode"),
		Stateful:     true,
		Debug:        true,
	})

	outcome, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Instance == nil {
		t.Fatalf("expected instance snapshot in debug mode")
	}
	if outcome.Debug["eos_version"] != "4.15.2F" {
		t.Fatalf("expected connector version metadata, got %#v", outcome.Debug)
	}
	if outcome.Debug["invocation_id"] == "" {
		t.Fatalf("expected invocation id in debug metadata")
	}
}

func TestRunUnsupportedNamedState(t *testing.T) {
	device := &fakeDevice{present: true, device: attrs.Map{}}
	registry := device.registry()
	registry.Transitions = map[string]TransitionFunc{"default": nil}

	engine := newTestEngine(t, Spec{
		DesiredState: "default",
		Declared:     attrs.Map{},
		Registry:     registry,
		Stateful:     true,
	})
	// Make the handler lookup fail at run time.
	engine.spec.Registry.Transitions = map[string]TransitionFunc{}

	_, err := engine.Run(context.Background())
	if !faults.IsCategory(err, faults.UnsupportedError) {
		t.Fatalf("expected UnsupportedError, got %v", err)
	}
}
