package vlan

import (
	"reflect"
	"testing"

	"github.com/crmarques/eosport/faults"
)

func TestExpandRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  []int
	}{
		{name: "single", input: "10", want: []int{10}},
		{name: "list", input: "100,1,50", want: []int{1, 50, 100}},
		{name: "range", input: "1-3,5", want: []int{1, 2, 3, 5}},
		{name: "overlapping", input: "1-4,3-5", want: []int{1, 2, 3, 4, 5}},
		{name: "duplicates", input: "7,7,7", want: []int{7}},
		{name: "spaces", input: " 2 , 1 ", want: []int{1, 2}},
		{name: "empty", input: "", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExpandRange(tc.input)
			if err != nil {
				t.Fatalf("ExpandRange(%q): %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ExpandRange(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestExpandRangeRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"0", "4095", "abc", "1-", "-5", "5-1", "1,,2", "1-2-3"} {
		if _, err := ExpandRange(input); err == nil {
			t.Fatalf("ExpandRange(%q): expected error", input)
		} else if !faults.IsCategory(err, faults.ValidationError) {
			t.Fatalf("ExpandRange(%q): expected ValidationError, got %v", input, err)
		}
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	got, err := Canonical("100,1,50")
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	if got != "1,50,100" {
		t.Fatalf("Canonical = %q, want %q", got, "1,50,100")
	}
}

func TestCanonicalRange(t *testing.T) {
	t.Parallel()

	got, err := CanonicalRange("1-3,5")
	if err != nil {
		t.Fatalf("CanonicalRange: %v", err)
	}
	if got != "1,2,3,5" {
		t.Fatalf("CanonicalRange = %q, want %q", got, "1,2,3,5")
	}

	// Ordering and compression differences must converge to one form.
	other, err := CanonicalRange("5,3,1-2")
	if err != nil {
		t.Fatalf("CanonicalRange: %v", err)
	}
	if other != got {
		t.Fatalf("canonical forms differ: %q vs %q", other, got)
	}
}
