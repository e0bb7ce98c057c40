package invitecode

import (
	"strings"
	"testing"
)

func TestGenerateLength(t *testing.T) {
	for _, length := range []int{1, 8, DefaultLength, 32} {
		code, err := Generate(length)
		if err != nil {
			t.Fatalf("Generate(%d) returned error: %v", length, err)
		}
		if len(code) != length {
			t.Fatalf("Generate(%d) returned %q with length %d", length, code, len(code))
		}
	}
}

func TestGenerateAlphabet(t *testing.T) {
	code, err := Generate(64)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range code {
		if !strings.ContainsRune(alphabet, r) {
			t.Fatalf("code %q contains %q outside the alphabet", code, r)
		}
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if _, err := Generate(0); err == nil {
		t.Fatal("expected error for length 0")
	}
	if _, err := Generate(-5); err == nil {
		t.Fatal("expected error for negative length")
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := Generate(DefaultLength)
		if err != nil {
			t.Fatal(err)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q after %d generations", code, i)
		}
		seen[code] = true
	}
}
