package faults

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsCategory(t *testing.T) {
	t.Parallel()

	err := NewTypedError(ValidationError, "invalid input", nil)
	if !IsCategory(err, ValidationError) {
		t.Fatalf("expected validation category match")
	}
	if IsCategory(err, ConnectionError) {
		t.Fatalf("expected connection category mismatch")
	}

	wrapped := errors.New("wrap: " + err.Error())
	if IsCategory(wrapped, ValidationError) {
		t.Fatalf("plain wrapped string error must not match typed category")
	}

	joined := errors.Join(err, errors.New("other"))
	if !IsCategory(joined, ValidationError) {
		t.Fatalf("expected category match through errors.Join")
	}
}

func TestCategorize(t *testing.T) {
	t.Parallel()

	if got := Categorize(nil); got != "" {
		t.Fatalf("expected empty category for nil error, got %q", got)
	}
	if got := Categorize(errors.New("boom")); got != InternalError {
		t.Fatalf("expected InternalError for untyped error, got %q", got)
	}

	typed := NewTypedError(CommandError, "device rejected commands", nil)
	if got := Categorize(fmt.Errorf("run: %w", typed)); got != CommandError {
		t.Fatalf("expected CommandError through wrapping, got %q", got)
	}
}

func TestTypedErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: connection refused")
	err := NewTypedError(ConnectionError, "unable to connect to veos01", cause)
	if err.Error() != "unable to connect to veos01: dial tcp: connection refused" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be preserved through Unwrap")
	}

	bare := NewTypedError(AuthenticationError, "", nil)
	if bare.Error() != string(AuthenticationError) {
		t.Fatalf("unexpected bare message: %q", bare.Error())
	}
}
