// Package organ implements the daily biomass, nitrogen, and leaf-area
// bookkeeping for a single crop organ. The organ is driven by an external
// daily scheduler through a fixed sequence of phase methods (see Leaf).
package organ

// poolTolerance is the numerical slack allowed when a subtraction would
// take a pool fractionally below zero.
const poolTolerance = 1e-10

// BiomassPool holds dry matter and nitrogen split into structural,
// metabolic, and storage fractions. All values are g/m2 and non-negative.
type BiomassPool struct {
	StructuralWt float64
	MetabolicWt  float64
	StorageWt    float64
	StructuralN  float64
	MetabolicN   float64
	StorageN     float64
}

// Wt returns total dry matter in the pool.
func (p *BiomassPool) Wt() float64 {
	return p.StructuralWt + p.MetabolicWt + p.StorageWt
}

// N returns total nitrogen in the pool.
func (p *BiomassPool) N() float64 {
	return p.StructuralN + p.MetabolicN + p.StorageN
}

// NonStructuralWt is the dry matter available for retranslocation.
func (p *BiomassPool) NonStructuralWt() float64 {
	return p.MetabolicWt + p.StorageWt
}

// Add accumulates another pool component-wise.
func (p *BiomassPool) Add(o BiomassPool) {
	p.StructuralWt += o.StructuralWt
	p.MetabolicWt += o.MetabolicWt
	p.StorageWt += o.StorageWt
	p.StructuralN += o.StructuralN
	p.MetabolicN += o.MetabolicN
	p.StorageN += o.StorageN
}

// Subtract removes another pool component-wise. Components that would go
// fractionally negative (within poolTolerance) are clamped to zero; a
// larger deficit indicates a bookkeeping bug upstream and is also clamped,
// callers enforce their own conservation checks before subtracting.
func (p *BiomassPool) Subtract(o BiomassPool) {
	p.StructuralWt = clampPool(p.StructuralWt - o.StructuralWt)
	p.MetabolicWt = clampPool(p.MetabolicWt - o.MetabolicWt)
	p.StorageWt = clampPool(p.StorageWt - o.StorageWt)
	p.StructuralN = clampPool(p.StructuralN - o.StructuralN)
	p.MetabolicN = clampPool(p.MetabolicN - o.MetabolicN)
	p.StorageN = clampPool(p.StorageN - o.StorageN)
}

// MultiplyBy scales every component by f and returns the scaled copy.
// The receiver is not modified.
func (p BiomassPool) MultiplyBy(f float64) BiomassPool {
	return BiomassPool{
		StructuralWt: p.StructuralWt * f,
		MetabolicWt:  p.MetabolicWt * f,
		StorageWt:    p.StorageWt * f,
		StructuralN:  p.StructuralN * f,
		MetabolicN:   p.MetabolicN * f,
		StorageN:     p.StorageN * f,
	}
}

// Clear zeroes the pool.
func (p *BiomassPool) Clear() {
	*p = BiomassPool{}
}

func clampPool(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// divide is the guarded division used throughout the organ: a zero (or
// effectively zero) denominator yields the caller-supplied default rather
// than an error or Inf.
func divide(num, den, def float64) float64 {
	if den == 0 {
		return def
	}
	return num / den
}
