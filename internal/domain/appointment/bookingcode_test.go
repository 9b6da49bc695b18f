package appointment

import (
	"bytes"
	"errors"
	"testing"
)

func TestBookingCodeGenerator_Format(t *testing.T) {
	g := NewBookingCodeGenerator()
	for i := 0; i < 500; i++ {
		code, err := g.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !IsBookingCode(code) {
			t.Fatalf("code %q does not match ^PDC[A-Z0-9]{7}$", code)
		}
	}
}

func TestBookingCodeGenerator_UsesWholeAlphabet(t *testing.T) {
	g := NewBookingCodeGenerator()
	seen := make(map[rune]bool)
	for i := 0; i < 2000; i++ {
		code, err := g.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, r := range code[len(BookingCodePrefix):] {
			seen[r] = true
		}
	}
	if len(seen) != len(BookingCodeAlphabet) {
		t.Errorf("expected all %d symbols to appear, saw %d", len(BookingCodeAlphabet), len(seen))
	}
}

func TestBookingCodeGenerator_Deterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x00}, 64)
	a, err := NewBookingCodeGeneratorFrom(bytes.NewReader(seed)).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewBookingCodeGeneratorFrom(bytes.NewReader(seed)).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("same entropy should give the same code: %q vs %q", a, b)
	}
	if a != "PDCAAAAAAA" {
		t.Errorf("zero entropy should pick the first symbol, got %q", a)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestBookingCodeGenerator_EntropyError(t *testing.T) {
	if _, err := NewBookingCodeGeneratorFrom(failingReader{}).Generate(); err == nil {
		t.Error("expected error when the random source fails")
	}
}

func TestIsBookingCode(t *testing.T) {
	tests := map[string]bool{
		"PDCAB12CD3":  true,
		"PDC0000000":  true,
		"pdcAB12CD3":  false,
		"PDCab12cd3":  false,
		"PDCAB12CD":   false,
		"PDCAB12CD34": false,
		"XYZAB12CD3":  false,
		"":            false,
	}
	for in, want := range tests {
		if got := IsBookingCode(in); got != want {
			t.Errorf("IsBookingCode(%q) = %v, want %v", in, got, want)
		}
	}
}
