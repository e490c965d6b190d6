package organ

import (
	"math"
	"testing"
)

func TestBiomassPool_Totals(t *testing.T) {
	p := BiomassPool{
		StructuralWt: 1.0, MetabolicWt: 2.0, StorageWt: 3.0,
		StructuralN: 0.1, MetabolicN: 0.2, StorageN: 0.3,
	}

	if got := p.Wt(); math.Abs(got-6.0) > 1e-12 {
		t.Errorf("Wt() = %f, want 6.0", got)
	}
	if got := p.N(); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("N() = %f, want 0.6", got)
	}
	if got := p.NonStructuralWt(); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("NonStructuralWt() = %f, want 5.0", got)
	}
}

func TestBiomassPool_AddSubtractRoundTrip(t *testing.T) {
	p := BiomassPool{StructuralWt: 10, MetabolicWt: 5, StorageWt: 2, StructuralN: 1, MetabolicN: 0.5, StorageN: 0.2}
	o := BiomassPool{StructuralWt: 3, MetabolicWt: 1, StorageWt: 0.5, StructuralN: 0.3, MetabolicN: 0.1, StorageN: 0.05}

	before := p
	p.Add(o)
	p.Subtract(o)

	if math.Abs(p.Wt()-before.Wt()) > 1e-12 || math.Abs(p.N()-before.N()) > 1e-12 {
		t.Errorf("add then subtract changed totals: wt %f -> %f, n %f -> %f",
			before.Wt(), p.Wt(), before.N(), p.N())
	}
}

func TestBiomassPool_SubtractClampsAtZero(t *testing.T) {
	p := BiomassPool{StorageWt: 1.0}
	p.Subtract(BiomassPool{StorageWt: 1.0 + 1e-12})

	if p.StorageWt != 0 {
		t.Errorf("expected storage clamped to 0, got %g", p.StorageWt)
	}
	if p.StructuralWt != 0 || p.MetabolicWt != 0 {
		t.Error("untouched components should stay zero")
	}
}

func TestBiomassPool_MultiplyByDoesNotMutate(t *testing.T) {
	p := BiomassPool{StructuralWt: 4, MetabolicN: 0.8}

	scaled := p.MultiplyBy(0.25)

	if math.Abs(scaled.StructuralWt-1.0) > 1e-12 {
		t.Errorf("scaled structural wt = %f, want 1.0", scaled.StructuralWt)
	}
	if math.Abs(scaled.MetabolicN-0.2) > 1e-12 {
		t.Errorf("scaled metabolic n = %f, want 0.2", scaled.MetabolicN)
	}
	if p.StructuralWt != 4 || p.MetabolicN != 0.8 {
		t.Error("MultiplyBy must not modify the receiver")
	}
}

func TestBiomassPool_Clear(t *testing.T) {
	p := BiomassPool{StructuralWt: 1, MetabolicWt: 1, StorageWt: 1, StructuralN: 1, MetabolicN: 1, StorageN: 1}
	p.Clear()
	if p.Wt() != 0 || p.N() != 0 {
		t.Errorf("Clear() left wt=%f n=%f", p.Wt(), p.N())
	}
}

func TestDivide(t *testing.T) {
	tests := []struct {
		name          string
		num, den, def float64
		want          float64
	}{
		{"normal", 10, 4, -1, 2.5},
		{"zero denominator", 10, 0, 7, 7},
		{"zero numerator", 0, 3, -1, 0},
		{"negative", -6, 3, -1, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := divide(tt.num, tt.den, tt.def); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("divide(%g, %g, %g) = %g, want %g", tt.num, tt.den, tt.def, got, tt.want)
			}
		})
	}
}
