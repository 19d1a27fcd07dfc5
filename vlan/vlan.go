// Package vlan provides canonicalization helpers for VLAN identifier
// lists as they appear in declared input and in device output. A list may
// mix single identifiers with compressed ranges ("1-3,5"); the canonical
// form is the fully expanded, numerically sorted, comma-joined list.
package vlan

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/crmarques/eosport/faults"
)

const (
	MinID = 1
	MaxID = 4094
)

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

// ParseID parses a single VLAN identifier and enforces the valid range.
func ParseID(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, validationError(fmt.Sprintf("invalid vlan id %q", trimmed), err)
	}
	if parsed < MinID || parsed > MaxID {
		return 0, validationError(
			fmt.Sprintf("vlan id %d out of range %d-%d", parsed, MinID, MaxID),
			nil,
		)
	}
	return parsed, nil
}

// ExpandRange expands a comma-delimited VLAN list that may contain
// compressed ranges into the explicit sorted set of identifiers.
// Duplicates are collapsed.
func ExpandRange(value string) ([]int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}

	seen := make(map[int]struct{})
	for _, token := range strings.Split(trimmed, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, validationError("vlan list contains an empty element", nil)
		}

		low, high, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		for id := low; id <= high; id++ {
			seen[id] = struct{}{}
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func parseToken(token string) (int, int, error) {
	low, high, isRange := strings.Cut(token, "-")
	if !isRange {
		id, err := ParseID(token)
		if err != nil {
			return 0, 0, err
		}
		return id, id, nil
	}

	lowID, err := ParseID(low)
	if err != nil {
		return 0, 0, err
	}
	highID, err := ParseID(high)
	if err != nil {
		return 0, 0, err
	}
	if highID < lowID {
		return 0, 0, validationError(fmt.Sprintf("invalid vlan range %q", token), nil)
	}
	return lowID, highID, nil
}

// Canonical sorts a comma-delimited list of VLAN identifiers ascending
// and re-joins it. The input must already be fully expanded.
func Canonical(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}

	ids := make([]int, 0, 8)
	for _, token := range strings.Split(trimmed, ",") {
		id, err := ParseID(token)
		if err != nil {
			return "", err
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return Join(ids), nil
}

// CanonicalRange expands any compressed ranges in value and returns the
// canonical sorted comma-joined form.
func CanonicalRange(value string) (string, error) {
	ids, err := ExpandRange(value)
	if err != nil {
		return "", err
	}
	return Join(ids), nil
}

// Join renders a list of VLAN identifiers as a comma-delimited string.
func Join(ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for idx, id := range ids {
		parts[idx] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
