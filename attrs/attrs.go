// Package attrs models the attribute maps exchanged between the declared
// input, the instance resolver, and the reconciliation engine. Values are
// scalars (string, bool, int64) in canonical form; Normalize collapses
// the numeric width and JSON decoding variants so that desired and actual
// values compare reliably.
package attrs

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/crmarques/eosport/faults"
)

type Value = any

type Map map[string]Value

// StateKey holds the presence marker inside a resolved instance map.
const StateKey = "state"

const (
	StatePresent = "present"
	StateAbsent  = "absent"
)

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

// Normalize canonicalizes a scalar attribute value. Integer widths
// collapse to int64, json.Number resolves to int64 or float64, and
// non-finite floats are rejected. Strings, bools and nil pass through.
func Normalize(value Value) (Value, error) {
	switch typed := value.(type) {
	case nil, bool, string:
		return typed, nil
	case int:
		return int64(typed), nil
	case int8:
		return int64(typed), nil
	case int16:
		return int64(typed), nil
	case int32:
		return int64(typed), nil
	case int64:
		return typed, nil
	case uint:
		return normalizeUint(uint64(typed))
	case uint8:
		return normalizeUint(uint64(typed))
	case uint16:
		return normalizeUint(uint64(typed))
	case uint32:
		return normalizeUint(uint64(typed))
	case uint64:
		return normalizeUint(typed)
	case float32:
		return normalizeFloat(float64(typed))
	case float64:
		return normalizeFloat(typed)
	case json.Number:
		if asInt, err := typed.Int64(); err == nil {
			return asInt, nil
		}
		asFloat, err := typed.Float64()
		if err != nil {
			return nil, validationError("attribute contains invalid number", err)
		}
		return normalizeFloat(asFloat)
	}

	return nil, validationError(fmt.Sprintf("unsupported attribute type %T", value), nil)
}

func normalizeUint(value uint64) (Value, error) {
	if value > math.MaxInt64 {
		return nil, validationError("attribute integer out of range", nil)
	}
	return int64(value), nil
}

func normalizeFloat(value float64) (Value, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, validationError("attribute contains non-finite float", nil)
	}
	// Device APIs decode integral fields as floats; fold them back.
	if value == math.Trunc(value) && math.Abs(value) < float64(math.MaxInt64) {
		return int64(value), nil
	}
	return value, nil
}

// Equal reports whether two attribute values are equal under canonical
// form. Values that fail to normalize are never equal.
func Equal(left Value, right Value) bool {
	normalizedLeft, err := Normalize(left)
	if err != nil {
		return false
	}
	normalizedRight, err := Normalize(right)
	if err != nil {
		return false
	}
	return normalizedLeft == normalizedRight
}

// Clone returns a shallow copy of the map. Values are scalars, so a
// shallow copy is a full copy.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	cloned := make(Map, len(m))
	for key, value := range m {
		cloned[key] = value
	}
	return cloned
}

// Keys returns the map keys in sorted order for deterministic iteration.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// State returns the presence marker, defaulting to absent when unset.
func (m Map) State() string {
	state, ok := m[StateKey].(string)
	if !ok || state == "" {
		return StateAbsent
	}
	return state
}
