package reconciler

import "github.com/crmarques/eosport/attrs"

// Outcome is the aggregated result of one reconciliation pass. Changes
// holds the attributes that differed from actual state, including ones
// recorded but not applied (check mode, or no setter registered).
type Outcome struct {
	Changed  bool           `json:"changed"`
	Changes  attrs.Map      `json:"changes"`
	Debug    map[string]any `json:"debug,omitempty"`
	Instance attrs.Map      `json:"instance,omitempty"`
}

// finalize hands the outcome to the caller exactly once. A second
// finalization is a programming error and panics.
func (e *Engine) finalize() Outcome {
	if e.finalized {
		panic("reconciler: outcome finalized twice")
	}
	e.finalized = true
	return e.outcome
}
