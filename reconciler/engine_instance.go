package reconciler

import (
	"context"

	"github.com/crmarques/eosport/attrs"
)

// Instance returns the actual state of the resource, memoized for the
// invocation. The first call queries the device through the registry
// resolver; later calls return the cached map until Invalidate clears
// it. Re-fetch never happens implicitly.
func (e *Engine) Instance(ctx context.Context, conn Conn) (attrs.Map, error) {
	if e.instanceLoaded {
		return e.instance, nil
	}

	resolved, err := e.spec.Registry.Resolve(ctx, conn, e.spec.Identity)
	if err != nil {
		return nil, err
	}
	if resolved == nil {
		resolved = attrs.Map{attrs.StateKey: attrs.StateAbsent}
	}

	e.instance = resolved
	e.instanceLoaded = true
	e.logger.Debug().Str("state", resolved.State()).Msg("resolved instance")
	return e.instance, nil
}

// Invalidate drops the cached instance so the next Instance call
// re-queries the device. Must be called after any mutation that could
// have changed remote state.
func (e *Engine) Invalidate() {
	e.instance = nil
	e.instanceLoaded = false
}
