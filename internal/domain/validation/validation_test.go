package validation

import (
	"errors"
	"testing"
)

func TestErrKeepsFirstMessagePerField(t *testing.T) {
	var v Error
	v.Required("name", " ")
	v.MaxLength("name", "abc", 1)

	err := v.Err()
	if err == nil {
		t.Fatalf("expected error")
	}
	var target *Error
	if !errors.As(err, &target) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if got := target.Fields["name"]; got != "This field is required." {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestErrNilWhenEmpty(t *testing.T) {
	var v Error
	v.Choice("status", "1", Range(1, 2)...)
	v.MinInt("floors", 1, 1)
	if err := v.Err(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestPhone(t *testing.T) {
	valid := []string{"+380931350239", "0931350239", "+38(093)135-02-39", "044-537-14-28"}
	invalid := []string{"+83(044)537 14 28", "088 537-1428", "12345"}

	for _, value := range valid {
		var v Error
		v.Phone("phone_number", value)
		if v.Err() != nil {
			t.Fatalf("expected %q to be valid", value)
		}
	}
	for _, value := range invalid {
		var v Error
		v.Phone("phone_number", value)
		if v.Err() == nil {
			t.Fatalf("expected %q to be invalid", value)
		}
	}
}
