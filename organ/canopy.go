package organ

import "math"

// coverCeiling keeps green cover strictly below 1 so light transmission
// never reaches exactly zero.
const coverCeiling = 1 - 1e-9

// CanopyState tracks leaf area, cover, and height for the organ.
// DltPotentialLAI and DltStressedLAI are this-timestep deltas.
type CanopyState struct {
	LAI             float64
	LAIDead         float64
	DltPotentialLAI float64
	DltStressedLAI  float64
	Height          float64
	SLN             float64
	CoverGreen      float64
	CoverDead       float64
}

// CoverGreenFor computes Beer-Lambert green cover for a leaf area index,
// clamped to [0, coverCeiling].
func CoverGreenFor(lai, extinction float64) float64 {
	cover := 1 - math.Exp(-extinction*lai)
	if cover < 0 {
		return 0
	}
	if cover > coverCeiling {
		return coverCeiling
	}
	return cover
}

// CoverDeadFor computes dead cover from dead leaf area.
func CoverDeadFor(laiDead, deadExtinction float64) float64 {
	cover := 1 - math.Exp(-deadExtinction*laiDead)
	if cover < 0 {
		return 0
	}
	return cover
}

// CoverTotal combines green and dead cover.
func (c *CanopyState) CoverTotal() float64 {
	return 1 - (1-c.CoverGreen)*(1-c.CoverDead)
}

// updateCanopy advances cover, SLN, and height once the day's leaf-area
// deltas have been applied.
func (l *Leaf) updateCanopy() {
	l.Canopy.SLN = divide(l.Live.StructuralN, l.Canopy.LAI, 0)
	l.Canopy.CoverGreen = CoverGreenFor(l.Canopy.LAI, l.providers.ExtinctionCoefficient.Value())
	l.Canopy.CoverDead = CoverDeadFor(l.Canopy.LAIDead, l.providers.DeadExtinctionCoefficient.Value())
	l.Canopy.Height = l.providers.Height.Value()
}
