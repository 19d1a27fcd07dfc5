package switchport

import (
	"context"
	"strings"

	"github.com/crmarques/eosport/attrs"
	"github.com/crmarques/eosport/reconciler"
)

func setMode(ctx context.Context, conn reconciler.Conn, identity string, desired attrs.Map) error {
	mode, ok := desired[AttrMode].(string)
	if !ok {
		return internalError("desired mode missing for setter", nil)
	}
	return conn.Config(ctx, []string{
		"interface " + identity,
		"switchport mode " + mode,
	})
}

func setAccessVLAN(ctx context.Context, conn reconciler.Conn, identity string, desired attrs.Map) error {
	id, err := vlanIDString(desired[AttrAccessVLAN])
	if err != nil {
		return err
	}
	return conn.Config(ctx, []string{
		"interface " + identity,
		"switchport access vlan " + id,
	})
}

func setTrunkNativeVLAN(ctx context.Context, conn reconciler.Conn, identity string, desired attrs.Map) error {
	id, err := vlanIDString(desired[AttrTrunkNativeVLAN])
	if err != nil {
		return err
	}
	return conn.Config(ctx, []string{
		"interface " + identity,
		"switchport trunk native vlan " + id,
	})
}

func setTrunkAllowedVLANs(ctx context.Context, conn reconciler.Conn, identity string, desired attrs.Map) error {
	allowed, ok := desired[AttrTrunkAllowedVLANs].(string)
	if !ok {
		return internalError("desired trunk allowed vlans missing for setter", nil)
	}
	return conn.Config(ctx, []string{
		"interface " + identity,
		"switchport trunk allowed vlan " + allowed,
	})
}

// setTrunkGroups converges group membership: groups configured on the
// device but not desired are removed, missing ones are added. This needs
// the current membership, so the setter re-reads the instance before
// emitting commands.
func setTrunkGroups(ctx context.Context, conn reconciler.Conn, identity string, desired attrs.Map) error {
	desiredRaw, ok := desired[AttrTrunkGroups].(string)
	if !ok {
		return internalError("desired trunk groups missing for setter", nil)
	}
	desiredGroups := splitGroups(desiredRaw)

	instance, err := Resolve(ctx, conn, identity)
	if err != nil {
		return err
	}
	currentRaw, _ := instance[AttrTrunkGroups].(string)
	currentGroups := splitGroups(currentRaw)

	cmds := []string{"interface " + identity}
	for _, group := range currentGroups {
		if !containsGroup(desiredGroups, group) {
			cmds = append(cmds, "no switchport trunk group "+group)
		}
	}
	for _, group := range desiredGroups {
		if !containsGroup(currentGroups, group) {
			cmds = append(cmds, "switchport trunk group "+group)
		}
	}
	if len(cmds) == 1 {
		return nil
	}

	return conn.Config(ctx, cmds)
}

func splitGroups(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	groups := strings.Split(raw, ",")
	for idx := range groups {
		groups[idx] = strings.TrimSpace(groups[idx])
	}
	return groups
}

func containsGroup(groups []string, candidate string) bool {
	for _, group := range groups {
		if group == candidate {
			return true
		}
	}
	return false
}
