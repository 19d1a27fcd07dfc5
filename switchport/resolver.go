package switchport

import (
	"context"
	"fmt"

	"github.com/crmarques/eosport/attrs"
	"github.com/crmarques/eosport/eapi"
	"github.com/crmarques/eosport/reconciler"
	"github.com/crmarques/eosport/vlan"
)

// Resolve fetches the actual switchport state. A routed port or a
// missing interface resolves to absent. Collection-valued fields come
// back in canonical form: the trunk allowed list is range-expanded and
// sorted, trunk groups are sorted, exactly like validated declared
// input.
func Resolve(ctx context.Context, conn reconciler.Conn, identity string) (attrs.Map, error) {
	results, err := conn.Enable(ctx, []string{
		fmt.Sprintf("show interfaces %s switchport", identity),
	})
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, internalError("unexpected switchport query response shape", nil)
	}

	entry, err := eapi.Extract(results[0], fmt.Sprintf(
		`.switchports[%q] | select(. != null)`, identity))
	if err != nil {
		return nil, err
	}

	enabled, err := eapi.Extract(entry, `.enabled`)
	if err != nil {
		return nil, err
	}
	if entry == nil || enabled != true {
		return attrs.Map{attrs.StateKey: attrs.StateAbsent}, nil
	}

	info, err := eapi.Extract(entry, `.switchportInfo`)
	if err != nil {
		return nil, err
	}
	infoMap, ok := info.(map[string]any)
	if !ok {
		return nil, internalError("switchport info missing from query response", nil)
	}

	instance := attrs.Map{attrs.StateKey: attrs.StatePresent}

	if mode, ok := infoMap["mode"].(string); ok {
		instance[AttrMode] = mode
	}
	if accessVLAN, err := attrs.Normalize(infoMap["accessVlanId"]); err == nil && accessVLAN != nil {
		instance[AttrAccessVLAN] = accessVLAN
	}
	if nativeVLAN, err := attrs.Normalize(infoMap["trunkingNativeVlanId"]); err == nil && nativeVLAN != nil {
		instance[AttrTrunkNativeVLAN] = nativeVLAN
	}
	if allowed, ok := infoMap["trunkAllowedVlans"].(string); ok {
		canonical, err := vlan.CanonicalRange(allowed)
		if err != nil {
			return nil, internalError(
				fmt.Sprintf("device reported malformed trunk allowed vlans %q", allowed), err)
		}
		instance[AttrTrunkAllowedVLANs] = canonical
	}
	if groups, ok := infoMap["trunkGroups"].([]any); ok {
		names := make([]string, 0, len(groups))
		for _, group := range groups {
			if name, ok := group.(string); ok {
				names = append(names, name)
			}
		}
		instance[AttrTrunkGroups] = canonicalGroups(names)
	}

	return instance, nil
}

// create initializes a layer-2 switchport on the interface.
func create(ctx context.Context, conn reconciler.Conn, identity string) error {
	return conn.Config(ctx, []string{
		"interface " + identity,
		"no ip address",
		"switchport",
	})
}

// remove reverts the interface to a routed port.
func remove(ctx context.Context, conn reconciler.Conn, identity string) error {
	return conn.Config(ctx, []string{
		"interface " + identity,
		"no switchport",
	})
}
