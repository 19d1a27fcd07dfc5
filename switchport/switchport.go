// Package switchport binds the layer-2 switchport resource kind to the
// reconciliation engine: the declared attribute schema, the validators
// that canonicalize declared values, the instance resolver, and the
// per-attribute setters that emit EOS configuration commands.
package switchport

import (
	"github.com/crmarques/eosport/faults"
	"github.com/crmarques/eosport/reconciler"
)

const (
	AttrMode              = "mode"
	AttrAccessVLAN        = "access_vlan"
	AttrTrunkNativeVLAN   = "trunk_native_vlan"
	AttrTrunkAllowedVLANs = "trunk_allowed_vlans"
	AttrTrunkGroups       = "trunk_groups"

	ModeAccess = "access"
	ModeTrunk  = "trunk"
)

// Attributes lists the declared schema in stable order.
func Attributes() []string {
	return []string{
		AttrMode,
		AttrAccessVLAN,
		AttrTrunkNativeVLAN,
		AttrTrunkAllowedVLANs,
		AttrTrunkGroups,
	}
}

// Registry wires the switchport kind into the engine.
func Registry() reconciler.Registry {
	return reconciler.Registry{
		Validators: map[string]reconciler.ValidatorFunc{
			AttrMode:              validateMode,
			AttrAccessVLAN:        validateVLANID,
			AttrTrunkNativeVLAN:   validateVLANID,
			AttrTrunkAllowedVLANs: validateTrunkAllowedVLANs,
			AttrTrunkGroups:       validateTrunkGroups,
		},
		Setters: map[string]reconciler.SetterFunc{
			AttrMode:              setMode,
			AttrAccessVLAN:        setAccessVLAN,
			AttrTrunkNativeVLAN:   setTrunkNativeVLAN,
			AttrTrunkAllowedVLANs: setTrunkAllowedVLANs,
			AttrTrunkGroups:       setTrunkGroups,
		},
		Resolve: Resolve,
		Create:  create,
		Remove:  remove,
	}
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}
