package components

import "github.com/agrosim/canopy/organ"

// Assimilation carries the day's arbitrated biomass assimilation into the
// organ's photosynthesis and transpiration-limited-biomass providers.
type Assimilation struct {
	Photosynthesis     float64 // actual assimilation, g/m2
	PotentialBiomassTE float64 // potential transpiration-limited biomass, g/m2
}

// Crop ties a plot's organ model to its phenology, soil water, and daily
// assimilation. The pointed-to state is heap-owned; the component itself
// never changes archetype after creation.
type Crop struct {
	Leaf      *organ.Leaf
	Phenology *Phenology
	Soil      *SoilWater
	Assim     *Assimilation
}
