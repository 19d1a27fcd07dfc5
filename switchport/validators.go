package switchport

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/crmarques/eosport/attrs"
	"github.com/crmarques/eosport/vlan"
)

func validateMode(value attrs.Value) (attrs.Value, error) {
	mode, ok := value.(string)
	if !ok {
		return nil, validationError(fmt.Sprintf("mode must be a string, got %T", value), nil)
	}
	if mode != ModeAccess && mode != ModeTrunk {
		return nil, validationError(
			fmt.Sprintf("mode must be %q or %q, got %q", ModeAccess, ModeTrunk, mode), nil)
	}
	return mode, nil
}

func validateVLANID(value attrs.Value) (attrs.Value, error) {
	switch typed := value.(type) {
	case string:
		id, err := vlan.ParseID(typed)
		if err != nil {
			return nil, err
		}
		return int64(id), nil
	default:
		normalized, err := attrs.Normalize(value)
		if err != nil {
			return nil, err
		}
		id, ok := normalized.(int64)
		if !ok {
			return nil, validationError(fmt.Sprintf("vlan id must be an integer, got %T", value), nil)
		}
		if id < vlan.MinID || id > vlan.MaxID {
			return nil, validationError(
				fmt.Sprintf("vlan id %d out of range %d-%d", id, vlan.MinID, vlan.MaxID), nil)
		}
		return id, nil
	}
}

func validateTrunkAllowedVLANs(value attrs.Value) (attrs.Value, error) {
	raw, ok := value.(string)
	if !ok {
		return nil, validationError(
			fmt.Sprintf("trunk_allowed_vlans must be a comma list, got %T", value), nil)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	return vlan.CanonicalRange(raw)
}

func validateTrunkGroups(value attrs.Value) (attrs.Value, error) {
	raw, ok := value.(string)
	if !ok {
		return nil, validationError(
			fmt.Sprintf("trunk_groups must be a comma list, got %T", value), nil)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	return canonicalGroups(strings.Split(raw, ",")), nil
}

// canonicalGroups sorts and re-joins a trunk group list. The same form
// is produced for declared input and for device output so comparison
// never depends on reporting order.
func canonicalGroups(groups []string) string {
	trimmed := make([]string, 0, len(groups))
	for _, group := range groups {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		trimmed = append(trimmed, group)
	}
	sort.Strings(trimmed)
	return strings.Join(trimmed, ",")
}

// vlanIDString renders a validated vlan id attribute for a CLI command.
func vlanIDString(value attrs.Value) (string, error) {
	normalized, err := attrs.Normalize(value)
	if err != nil {
		return "", err
	}
	id, ok := normalized.(int64)
	if !ok {
		return "", internalError(fmt.Sprintf("vlan id has unexpected type %T", value), nil)
	}
	return strconv.FormatInt(id, 10), nil
}
