package common

import (
	"encoding/hex"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestMakeRandHexString_EntropyHint(t *testing.T) {
	const n = 32
	a, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("two consecutive tokens are equal, entropy source suspect")
	}
}

// ---------- GenerateRandByteArray ----------

func TestGenerateRandByteArray_Size(t *testing.T) {
	b := GenerateRandByteArray(24)
	if len(b) != 24 {
		t.Fatalf("expected 24 bytes, got %d", len(b))
	}
}

// ---------- ValidationError ----------

func TestValidationError_CollectsAllFields(t *testing.T) {
	ve := NewValidationError().
		Add("title", "is required").
		Add("content", "is required")

	if ve.Empty() {
		t.Fatal("expected non-empty validation error")
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(ve.Fields))
	}
	if ve.Fields["title"] != "is required" {
		t.Fatalf("unexpected reason: %q", ve.Fields["title"])
	}
}

func TestAsValidationError(t *testing.T) {
	ve := NewValidationError().Add("email", "invalid format")

	got, ok := AsValidationError(ve)
	if !ok || got == nil {
		t.Fatal("expected AsValidationError to match")
	}

	if _, ok := AsValidationError(ErrorInternal); ok {
		t.Fatal("plain sentinel must not match as validation error")
	}
}
