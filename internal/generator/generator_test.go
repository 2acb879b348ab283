package generator

import "testing"

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 50; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("draw %d differs: %v vs %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of range: %v", i, va)
		}
	}
}

func TestSequenceCycles(t *testing.T) {
	s := NewSequence(0.1, 0.9)
	want := []float64{0.1, 0.9, 0.1, 0.9}
	for i, w := range want {
		if got := s.Float64(); got != w {
			t.Fatalf("draw %d: got %v, want %v", i, got, w)
		}
	}
	if got := NewSequence().Float64(); got != 0.5 {
		t.Fatalf("expected empty sequence to yield 0.5, got %v", got)
	}
}
