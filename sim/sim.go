// Package sim runs a field of plots through the organ model's fixed daily
// event order: it is the external scheduler and arbitrator the organ is
// driven by.
package sim

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/agrosim/canopy/components"
	"github.com/agrosim/canopy/config"
	"github.com/agrosim/canopy/funcs"
	"github.com/agrosim/canopy/organ"
	"github.com/agrosim/canopy/weather"
)

// Sim holds the simulation world: one entity per plot, each carrying its
// organ model, phenology, and soil water.
type Sim struct {
	world      *ecs.World
	cropMapper *ecs.Map2[components.Plot, components.Crop]
	cropFilter *ecs.Filter2[components.Plot, components.Crop]

	cfg     *config.Config
	met     *weather.Records
	residue *Residue

	day       int
	ended     int
	exhausted bool
}

// New creates a simulation from configuration and a loaded weather series,
// and sows every plot.
func New(cfg *config.Config, met *weather.Records) (*Sim, error) {
	if err := met.Seek(cfg.Simulation.SowingDay); err != nil {
		return nil, fmt.Errorf("sowing day: %w", err)
	}

	world := ecs.NewWorld()
	s := &Sim{
		world:      world,
		cropMapper: ecs.NewMap2[components.Plot, components.Crop](world),
		cropFilter: ecs.NewFilter2[components.Plot, components.Crop](world),
		cfg:        cfg,
		met:        met,
		residue:    NewResidue(),
	}

	for i := 0; i < cfg.Simulation.Plots; i++ {
		if err := s.sowPlot(i); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// sowPlot creates one plot entity with a freshly sown organ.
func (s *Sim) sowPlot(index int) error {
	cfg := s.cfg
	phen := components.NewPhenology(
		cfg.Phenology.TBase,
		cfg.Phenology.TTEmergence,
		cfg.Phenology.TTMaturity,
	)
	soil := components.NewSoilWater(cfg.Soil.CapacityMM, cfg.Soil.InitialMM)
	assim := &components.Assimilation{}

	leaf := s.buildLeaf(phen, soil, assim)
	if err := leaf.Sow(cfg.Simulation.SowingDensity); err != nil {
		return fmt.Errorf("sowing plot %d: %w", index, err)
	}

	plot := components.Plot{
		Index:   index,
		Name:    fmt.Sprintf("plot-%d", index),
		Area:    1,
		SownDay: cfg.Simulation.SowingDay,
	}
	crop := components.Crop{
		Leaf:      leaf,
		Phenology: phen,
		Soil:      soil,
		Assim:     assim,
	}
	s.cropMapper.NewEntity(&plot, &crop)
	return nil
}

// buildLeaf wires the organ's providers from configuration and the plot's
// collaborators.
func (s *Sim) buildLeaf(phen *components.Phenology, soil *components.SoilWater, assim *components.Assimilation) *organ.Leaf {
	crop := s.cfg.Crop
	sup := s.cfg.Supply
	dem := s.cfg.Demand
	sen := s.cfg.Senescence

	tt := funcs.Func(func() float64 { return phen.TT })

	providers := organ.Providers{
		SenescenceRate:          funcs.NewConstant(sup.SenescenceRate),
		DMReallocationFactor:    funcs.NewConstant(sup.DMReallocationFactor),
		DMRetranslocationFactor: funcs.NewConstant(sup.DMRetranslocationFactor),
		NReallocationFactor:     funcs.NewConstant(sup.NReallocationFactor),
		NRetranslocationFactor:  funcs.NewConstant(sup.NRetranslocationFactor),

		StructuralDMDemand: funcs.NewConstant(dem.StructuralDM),
		MetabolicDMDemand:  funcs.NewConstant(dem.MetabolicDM),
		StorageDMDemand:    funcs.NewConstant(dem.StorageDM),
		StructuralNDemand:  funcs.NewConstant(dem.StructuralN),
		MetabolicNDemand:   funcs.NewConstant(dem.MetabolicN),
		StorageNDemand:     funcs.NewConstant(dem.StorageN),

		ExtinctionCoefficient:     funcs.NewConstant(crop.ExtinctionCoefficient),
		DeadExtinctionCoefficient: funcs.NewConstant(crop.DeadExtinctionCoefficient),
		Height:                    funcs.MustLinear(tt, crop.HeightTT.X, crop.HeightTT.Y),
		LeafArea:                  funcs.MustLinear(tt, crop.LeafAreaTT.X, crop.LeafAreaTT.Y),
		AreaPerDM:                 funcs.NewConstant(crop.AreaPerDM),
		ExpansionStress: &funcs.Bounded{
			Source: funcs.MustLinear(
				funcs.Func(soil.SupplyDemandRatio),
				crop.ExpansionStressSW.X, crop.ExpansionStressSW.Y,
			),
			Lower: 0,
			Upper: 1,
		},

		Photosynthesis:     funcs.Func(func() float64 { return assim.Photosynthesis }),
		PotentialBiomassTE: funcs.Func(func() float64 { return assim.PotentialBiomassTE }),
	}

	params := organ.LeafParams{
		InitialLAI: crop.InitialLAI,
		InitialPool: organ.BiomassPool{
			StructuralWt: crop.InitialWt,
			StructuralN:  crop.InitialN,
		},
		FractionStanding: crop.FractionStanding,
		Senescence: organ.SenescenceParams{
			RadiationCritical:    sen.RadiationCritical,
			LightTimeConstant:    sen.LightTimeConstant,
			WaterTimeConstant:    sen.WaterTimeConstant,
			WaterStressThreshold: sen.WaterStressThreshold,
			FrostKillTemperature: sen.FrostKillTemperature,
			LightWindow:          sen.LightWindow,
			WaterWindow:          sen.WaterWindow,
			RatioWindow:          sen.RatioWindow,
		},
	}

	return organ.NewLeaf(crop.OrganName, crop.Name, params, providers, phen, s.met, soil)
}

// Day returns the number of days simulated so far.
func (s *Sim) Day() int {
	return s.day
}

// Residue returns the surface residue pool.
func (s *Sim) Residue() *Residue {
	return s.residue
}

// Done reports whether the run is over: weather exhausted or every plant
// ended.
func (s *Sim) Done() bool {
	return s.exhausted || s.ended >= s.cfg.Simulation.Plots
}
