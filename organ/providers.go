package organ

// ValueProvider is the single-capability contract for every injected rate
// and value function: constants, response curves, composites. Each is
// queried at most once per relevant phase and must be side-effect free.
type ValueProvider interface {
	Value() float64
}

// Weather exposes the daily weather readings the organ consumes.
type Weather interface {
	// Radiation is incident solar radiation for the day (MJ/m2).
	Radiation() float64
	// MinTemperature is the daily minimum air temperature (degrees C).
	MinTemperature() float64
}

// WaterBalance is the root/soil water collaborator. The organ reads
// extractable water and the smoothed-input supply/demand ratio, and writes
// back its computed water supply for arbitration.
type WaterBalance interface {
	TotalExtractableWater() float64
	// SupplyDemandRatio is the day's water supply over demand, fed into
	// the 5-day senescence window. Collaborator-supplied, never assumed.
	SupplyDemandRatio() float64
	SetWaterSupply(supply float64)
}

// ResidueSink receives the organ's remaining biomass exactly once, at
// plant ending.
type ResidueSink interface {
	Add(mass, n, fractionStanding float64, cropType, organName string)
}

// PlantStatus gates every phase handler: handlers run only while the plant
// is alive, and most only once it has emerged.
type PlantStatus interface {
	IsAlive() bool
	IsEmerged() bool
}

// Providers bundles the externally supplied rate and value functions the
// organ consumes. All are required unless noted.
type Providers struct {
	// Senescence rate of the live pool, fraction per day in [0,1].
	SenescenceRate ValueProvider
	// DM reallocation and retranslocation factors in [0,1].
	DMReallocationFactor    ValueProvider
	DMRetranslocationFactor ValueProvider
	// N reallocation and retranslocation factors in [0,1].
	NReallocationFactor    ValueProvider
	NRetranslocationFactor ValueProvider

	// Demand functions, g/m2/day.
	StructuralDMDemand ValueProvider
	MetabolicDMDemand  ValueProvider
	StorageDMDemand    ValueProvider
	StructuralNDemand  ValueProvider
	MetabolicNDemand   ValueProvider
	StorageNDemand     ValueProvider

	// Canopy geometry and growth.
	ExtinctionCoefficient     ValueProvider
	DeadExtinctionCoefficient ValueProvider
	Height                    ValueProvider
	// LeafArea is the potential leaf area laid down per culm per day (m2/m2
	// for a culm of proportion 1).
	LeafArea ValueProvider
	// AreaPerDM converts allocated structural dry matter to leaf area
	// (m2/g); the partitioning reconciliation between carbon and potential
	// growth happens through this conversion.
	AreaPerDM ValueProvider
	// ExpansionStress is the day's expansion stress factor in [0,1].
	ExpansionStress ValueProvider

	// Photosynthesis is the day's actual biomass assimilation (g/m2).
	Photosynthesis ValueProvider
	// PotentialBiomassTE is potential transpiration-limited biomass (g/m2).
	PotentialBiomassTE ValueProvider
}
