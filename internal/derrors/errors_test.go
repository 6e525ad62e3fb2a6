package derrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOfUnwrapsPlainError(t *testing.T) {
	cause := errors.New("disk full")
	err := E(BadRecord, "b0000/d000000.i", cause)
	if got := KindOf(err); got != BadRecord {
		t.Errorf("KindOf = %v, want %v", got, BadRecord)
	}
	if !Is(err, BadRecord) {
		t.Error("Is(err, BadRecord) = false, want true")
	}
	if Is(err, MissingRecord) {
		t.Error("Is(err, MissingRecord) = true, want false")
	}
}

func TestKindOfThroughWrap(t *testing.T) {
	inner := E(MissingRecord, "b0000/band.tail", nil)
	wrapped := Wrap(inner, "reading band tail")
	if got := KindOf(wrapped); got != MissingRecord {
		t.Errorf("KindOf(wrapped) = %v, want %v", got, MissingRecord)
	}
}

func TestKindOfDefaultsToOther(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != Other {
		t.Errorf("KindOf(plain error) = %v, want Other", got)
	}
	if got := KindOf(nil); got != Other {
		t.Errorf("KindOf(nil) = %v, want Other", got)
	}
}

func TestErrorMessageIncludesContext(t *testing.T) {
	err := Integrity(ScopeBlock, "b0000/d000000", "data sha1 mismatch")
	msg := err.Error()
	want := fmt.Sprintf("%s: %s (%s): %s", IntegrityFailure, "b0000/d000000", ScopeBlock, "data sha1 mismatch")
	if msg != want {
		t.Errorf("Error() = %q, want %q", msg, want)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := E(Other, "x", cause)
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap did not return the original cause")
	}
}
