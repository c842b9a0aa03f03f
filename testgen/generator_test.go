package testgen

import (
	"testing"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestGenerateRandomComposite(t *testing.T) {
	g := newTestGenerator(t)
	out, err := g.Generate(5, 16, RandomComposite)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("len(out) = %d, want 5", len(out))
	}
	for _, n := range out {
		if n.BitLen() != 16 {
			t.Fatalf("BitLen() = %d, want 16", n.BitLen())
		}
		if !isComposite(n) {
			t.Fatalf("%s is not composite", n)
		}
	}
}

func TestGenerateRandomOddComposite(t *testing.T) {
	g := newTestGenerator(t)
	out, err := g.Generate(5, 16, RandomOddComposite)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, n := range out {
		if n.Bit(0) != 1 {
			t.Fatalf("%s is not odd", n)
		}
	}
}

func TestGenerateHardSemiprime(t *testing.T) {
	g := newTestGenerator(t)
	const bits = 40
	out, err := g.Generate(10, bits, HardSemiprime)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out) != 10 {
		t.Fatalf("len(out) = %d, want 10", len(out))
	}
	for _, n := range out {
		if n.BitLen() != bits {
			t.Fatalf("BitLen() = %d, want %d", n.BitLen(), bits)
		}
	}
}

func TestGenerateRejectsBelowMinBits(t *testing.T) {
	g := newTestGenerator(t)
	if _, err := g.Generate(1, 2, RandomComposite); err == nil {
		t.Fatalf("expected error for bits below minimum")
	}
	if _, err := g.Generate(1, 3, HardSemiprime); err == nil {
		t.Fatalf("expected error for bits below minimum")
	}
}

func TestUniformBigDegenerateRange(t *testing.T) {
	g := newTestGenerator(t)
	lo := bigOne
	hi := bigOne // hi <= lo: must promote range width to 1, not hang
	v := uniformBig(g.r, lo, hi)
	if v.Cmp(lo) != 0 {
		t.Fatalf("uniformBig degenerate range = %s, want %s", v, lo)
	}
}
