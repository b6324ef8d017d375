package apperr

import (
	"errors"
	"testing"
)

func TestErrorImplementsStdError(t *testing.T) {
	err := New(CodeNoInventory, 409, "not enough seats")
	if err.Error() != "no_inventory: not enough seats" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestIsMatchesOnCode(t *testing.T) {
	err := Withf(CodePriceMismatch, 409, "expected %d got %d", 100, 105)
	target := New(CodePriceMismatch, 0, "")

	if !errors.Is(err, target) {
		t.Fatalf("expected errors.Is to match on code")
	}

	other := New(CodeNoInventory, 0, "")
	if errors.Is(err, other) {
		t.Fatalf("expected errors.Is to not match a different code")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeInvalidSeatCount, 400, "seats must be positive").WithDetails(map[string]any{"seats": -1})
	if err.Details["seats"] != -1 {
		t.Fatalf("expected details to be attached")
	}
}
