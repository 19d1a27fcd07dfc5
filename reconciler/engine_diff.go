package reconciler

import "github.com/crmarques/eosport/attrs"

// Diff computes the desired-biased changeset: every key in desired with
// a non-nil value whose canonical form differs from actual. Keys that
// appear only in actual are never considered, and the presence marker is
// not an attribute.
func Diff(desired attrs.Map, actual attrs.Map) attrs.Map {
	changeset := attrs.Map{}
	for _, key := range desired.Keys() {
		if key == attrs.StateKey {
			continue
		}
		value := desired[key]
		if value == nil {
			continue
		}
		if attrs.Equal(value, actual[key]) {
			continue
		}
		changeset[key] = value
	}
	return changeset
}
