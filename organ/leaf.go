package organ

import (
	"fmt"
	"math"
)

// State is the organ lifecycle state. The daily cycle only runs while Sown.
type State int

const (
	StateUninitialized State = iota
	StateSown
	StateEnded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSown:
		return "sown"
	case StateEnded:
		return "ended"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// LeafParams holds the organ's initial conditions and fixed constants.
type LeafParams struct {
	// InitialLAI is the leaf area per plant at sowing (m2/m2 at density 1).
	InitialLAI float64
	// InitialPool is the seed-reserve biomass per plant (g/m2 at density 1).
	InitialPool BiomassPool
	// FractionStanding of residue left standing at plant ending.
	FractionStanding float64
	Senescence       SenescenceParams
}

// Leaf is the organ growth model: one instance per plant per run, mutated
// exactly once per day in the fixed phase order fired by the external
// scheduler. It performs no internal threading; all state is owned by the
// single caller.
type Leaf struct {
	Name     string
	CropType string

	// Named pools. Live and Dead persist across days; the rest are
	// this-timestep deltas zeroed at start of day.
	Live      BiomassPool
	Dead      BiomassPool
	Allocated BiomassPool
	Senesced  BiomassPool
	Detached  BiomassPool
	Removed   BiomassPool

	// Day's supply and demand, recomputed fresh every day.
	DMSupply BiomassSupply
	NSupply  BiomassSupply
	DMDemand BiomassDemand
	NDemand  BiomassDemand

	Culms  []Culm
	Canopy CanopyState

	// WaterSupply is written back for arbitration each day.
	WaterSupply float64

	state       State
	density     float64
	startLive   BiomassPool
	potentialDM DMAllocation
	dmAllocated DMAllocation
	dltLAI      float64

	senescence *SenescenceEngine
	providers  Providers
	params     LeafParams

	plant   PlantStatus
	weather Weather
	water   WaterBalance
}

// NewLeaf builds an uninitialized leaf organ. Sow must be called before the
// daily cycle runs.
func NewLeaf(name, cropType string, params LeafParams, providers Providers, plant PlantStatus, weather Weather, water WaterBalance) *Leaf {
	return &Leaf{
		Name:       name,
		CropType:   cropType,
		params:     params,
		providers:  providers,
		plant:      plant,
		weather:    weather,
		water:      water,
		senescence: NewSenescenceEngine(params.Senescence),
	}
}

// State returns the current lifecycle state.
func (l *Leaf) State() State {
	return l.state
}

// Senescence exposes the engine's per-day component losses.
func (l *Leaf) Senescence() *SenescenceEngine {
	return l.senescence
}

// DltLAI is the day's actual leaf-area growth.
func (l *Leaf) DltLAI() float64 {
	return l.dltLAI
}

// PotentialDM is the arbitrator's recorded potential dry matter allocation
// for the day, before water and nitrogen limits were applied.
func (l *Leaf) PotentialDM() DMAllocation {
	return l.potentialDM
}

// Sow initializes pools, canopy, and the main culm at the given plant
// density (plants/m2). Re-sowing a sown organ is a caller error.
func (l *Leaf) Sow(density float64) error {
	if l.state == StateSown {
		return fmt.Errorf("%s: already sown", l.Name)
	}
	l.state = StateSown
	l.density = density

	l.Live = l.params.InitialPool.MultiplyBy(density)
	l.Dead.Clear()
	l.clearDeltas()

	l.Canopy = CanopyState{LAI: l.params.InitialLAI * density}
	l.Culms = []Culm{{
		Number:     0,
		Proportion: 1,
		Density:    density,
	}}
	l.senescence.Reset()
	return nil
}

// AddCulm appends a tiller. Tillering rules live with the caller; the organ
// only accounts for the culm's additive leaf-area contribution.
func (l *Leaf) AddCulm(leafAtAppearance, verticalAdjustment, proportion float64) {
	l.Culms = append(l.Culms, Culm{
		Number:             len(l.Culms),
		Proportion:         proportion,
		LeafAtAppearance:   leafAtAppearance,
		VerticalAdjustment: verticalAdjustment,
		Density:            l.density,
	})
}

// StartOfDay zeroes the delta pools and captures the start-of-day live
// state that the day's conservation checks are made against.
func (l *Leaf) StartOfDay() error {
	if !l.active() {
		return nil
	}
	l.clearDeltas()
	l.startLive = l.Live
	l.dltLAI = 0
	return nil
}

// SetDMSupply computes the day's dry matter supply.
func (l *Leaf) SetDMSupply() error {
	if !l.active() {
		return nil
	}
	supply, err := l.computeDMSupply()
	if err != nil {
		return err
	}
	l.DMSupply = supply
	return nil
}

// SetNSupply computes the day's nitrogen supply.
func (l *Leaf) SetNSupply() error {
	if !l.active() {
		return nil
	}
	supply, err := l.computeNSupply()
	if err != nil {
		return err
	}
	l.NSupply = supply
	return nil
}

// SetDMDemand computes the day's dry matter demand.
func (l *Leaf) SetDMDemand() error {
	if !l.active() {
		return nil
	}
	l.DMDemand = l.computeDMDemand()
	return nil
}

// SetNDemand computes the day's nitrogen demand.
func (l *Leaf) SetNDemand() error {
	if !l.active() {
		return nil
	}
	l.NDemand = l.computeNDemand()
	return nil
}

// DoPotentialPlantGrowth advances the canopy's potential and stressed
// leaf-area deltas and writes the organ's water supply back to the soil
// water collaborator for arbitration.
func (l *Leaf) DoPotentialPlantGrowth() error {
	if !l.active() {
		return nil
	}

	l.Canopy.DltPotentialLAI = PotentialLAI(l.Culms, l.providers.LeafArea.Value())

	stress := l.providers.ExpansionStress.Value()
	if stress < 0 {
		stress = 0
	} else if stress > 1 {
		stress = 1
	}
	l.Canopy.DltStressedLAI = l.Canopy.DltPotentialLAI * stress

	l.WaterSupply = l.water.TotalExtractableWater()
	l.water.SetWaterSupply(l.WaterSupply)
	return nil
}

// DoPotentialPlantPartitioning reconciles carbon availability with the
// potential leaf-area growth: the day's actual LAI delta is the stressed
// potential capped by the area the allocated structural dry matter can
// build.
func (l *Leaf) DoPotentialPlantPartitioning() error {
	if !l.active() {
		return nil
	}
	areaFromDM := l.dmAllocated.Structural * l.providers.AreaPerDM.Value()
	l.dltLAI = math.Min(l.Canopy.DltStressedLAI, areaFromDM)
	if l.dltLAI < 0 {
		l.dltLAI = 0
	}
	return nil
}

// DoActualPlantGrowth applies the day's leaf-area growth, runs the
// senescence engine, transfers senesced biomass from live to dead, and
// refreshes cover, SLN, and height.
func (l *Leaf) DoActualPlantGrowth() error {
	if !l.active() {
		return nil
	}

	l.Canopy.LAI += l.dltLAI

	dltSlai := l.senescence.Compute(SenescenceInputs{
		LAI:                l.Canopy.LAI,
		Extinction:         l.providers.ExtinctionCoefficient.Value(),
		Radiation:          l.weather.Radiation(),
		MinTemperature:     l.weather.MinTemperature(),
		Photosynthesis:     l.providers.Photosynthesis.Value(),
		PotentialBiomassTE: l.providers.PotentialBiomassTE.Value(),
		SupplyDemandRatio:  l.water.SupplyDemandRatio(),
	})
	l.applySenescence(dltSlai)

	l.updateCanopy()
	return nil
}

// applySenescence moves the senesced proportion of every live sub-pool into
// dead, recording the transfer in the senesced delta pool. Mass and N are
// conserved: nothing is created or destroyed, only moved.
func (l *Leaf) applySenescence(dltSlai float64) {
	if dltSlai <= 0 || l.Canopy.LAI <= 0 {
		return
	}
	if dltSlai > l.Canopy.LAI {
		dltSlai = l.Canopy.LAI
	}

	proportion := divide(dltSlai, l.Canopy.LAI, 0)
	senesced := l.Live.MultiplyBy(proportion)

	l.Live.Subtract(senesced)
	l.Dead.Add(senesced)
	l.Senesced.Add(senesced)

	l.Canopy.LAI -= dltSlai
	l.Canopy.LAIDead += dltSlai
}

// EndPlant clears all pools and forwards the final live plus dead biomass
// to the residue collaborator. Called exactly once, at plant ending.
func (l *Leaf) EndPlant(residue ResidueSink) error {
	if l.state != StateSown {
		return fmt.Errorf("%s: cannot end from state %s", l.Name, l.state)
	}
	l.state = StateEnded

	mass := l.Live.Wt() + l.Dead.Wt()
	n := l.Live.N() + l.Dead.N()
	if residue != nil && mass > 0 {
		residue.Add(mass, n, l.params.FractionStanding, l.CropType, l.Name)
	}

	l.Live.Clear()
	l.Dead.Clear()
	l.clearDeltas()
	l.Canopy = CanopyState{}
	l.Culms = nil
	return nil
}

// active reports whether the daily handlers should run: the organ must be
// sown and the plant alive and emerged.
func (l *Leaf) active() bool {
	if l.state != StateSown {
		return false
	}
	if l.plant == nil {
		return true
	}
	return l.plant.IsAlive() && l.plant.IsEmerged()
}

func (l *Leaf) clearDeltas() {
	l.Allocated.Clear()
	l.Senesced.Clear()
	l.Detached.Clear()
	l.Removed.Clear()
	l.DMSupply = BiomassSupply{}
	l.NSupply = BiomassSupply{}
	l.DMDemand = BiomassDemand{}
	l.NDemand = BiomassDemand{}
	l.potentialDM = DMAllocation{}
	l.dmAllocated = DMAllocation{}
}
