package attrs

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeCollapsesNumericWidths(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input Value
		want  Value
	}{
		{name: "int", input: int(10), want: int64(10)},
		{name: "int32", input: int32(10), want: int64(10)},
		{name: "uint16", input: uint16(10), want: int64(10)},
		{name: "integral float", input: float64(10), want: int64(10)},
		{name: "json number", input: json.Number("10"), want: int64(10)},
		{name: "string", input: "trunk", want: "trunk"},
		{name: "bool", input: true, want: true},
		{name: "nil", input: nil, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.input)
			if err != nil {
				t.Fatalf("Normalize(%#v): %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Normalize(%#v) = %#v, want %#v", tc.input, got, tc.want)
			}
		})
	}
}

func TestEqualAcrossRepresentations(t *testing.T) {
	t.Parallel()

	if !Equal(int(10), float64(10)) {
		t.Fatalf("expected int and float forms of the same vlan id to compare equal")
	}
	if Equal("access", "trunk") {
		t.Fatalf("expected differing strings to compare unequal")
	}
	if Equal(10, "10") {
		t.Fatalf("numeric and string forms must not compare equal")
	}
}

func TestMapStateDefaultsToAbsent(t *testing.T) {
	t.Parallel()

	if got := (Map{}).State(); got != StateAbsent {
		t.Fatalf("expected absent default, got %q", got)
	}
	if got := (Map{StateKey: StatePresent}).State(); got != StatePresent {
		t.Fatalf("expected present, got %q", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	original := Map{"mode": "access", "access_vlan": int64(10)}
	cloned := original.Clone()
	cloned["mode"] = "trunk"

	if original["mode"] != "access" {
		t.Fatalf("clone mutated the original map")
	}
	if !reflect.DeepEqual(original.Keys(), []string{"access_vlan", "mode"}) {
		t.Fatalf("unexpected sorted keys: %v", original.Keys())
	}
}
