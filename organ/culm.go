package organ

// Culm is one tillering stem unit. The main culm is created at sowing with
// proportion 1; tillering adds further culms with decreasing proportion.
// Culms are owned exclusively by the organ and contribute additively to
// potential leaf-area growth.
type Culm struct {
	// Number is the culm's ordinal, 0 for the main culm.
	Number int
	// Proportion scales this culm's contribution in [0,1].
	Proportion float64
	// LeafAtAppearance is the main-stem leaf stage when the culm appeared.
	LeafAtAppearance float64
	// VerticalAdjustment reduces leaf size on later tillers.
	VerticalAdjustment float64
	// Density is plants per m2, shared by all culms of a plant.
	Density float64
}

// PotentialArea returns the culm's potential leaf-area contribution for the
// day (m2 leaf per m2 ground), given the per-culm potential leaf area from
// the leaf-area provider.
func (c *Culm) PotentialArea(leafArea float64) float64 {
	size := 1 - c.VerticalAdjustment
	if size < 0 {
		size = 0
	}
	return leafArea * size * c.Proportion * c.Density
}

// PotentialLAI sums the potential area over all culms.
func PotentialLAI(culms []Culm, leafArea float64) float64 {
	var total float64
	for i := range culms {
		total += culms[i].PotentialArea(leafArea)
	}
	return total
}
