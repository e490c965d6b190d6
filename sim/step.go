package sim

import (
	"fmt"
	"math"

	"github.com/agrosim/canopy/components"
	"github.com/agrosim/canopy/organ"
	"github.com/agrosim/canopy/telemetry"
	"github.com/agrosim/canopy/weather"
)

// Step advances the whole field one day: the fixed event order for every
// living plot, then phenology and the weather cursor. Any conservation or
// capacity violation aborts the step with the plot identified.
func (s *Sim) Step() ([]telemetry.DailyStats, error) {
	if s.Done() {
		return nil, nil
	}
	rec := s.met.Today()

	var stats []telemetry.DailyStats
	var stepErr error

	query := s.cropFilter.Query()
	for query.Next() {
		plot, crop := query.Get()
		if stepErr != nil {
			continue // Must consume entire query to release world lock
		}
		if err := s.stepCrop(crop, rec); err != nil {
			stepErr = fmt.Errorf("%s day %d: %w", plot.Name, s.day, err)
			continue
		}
		stats = append(stats, s.collect(plot, crop))
	}
	if stepErr != nil {
		return nil, stepErr
	}

	s.day++
	if !s.met.Advance() {
		s.exhausted = true
	}
	return stats, nil
}

// stepCrop runs one plot through the daily event order.
func (s *Sim) stepCrop(crop *components.Crop, rec weather.Record) error {
	leaf := crop.Leaf
	phen := crop.Phenology
	soil := crop.Soil

	soil.AddRain(rec.Rain, s.cfg.Soil.CoverRetention)

	if leaf.State() != organ.StateSown || !phen.IsAlive() {
		return nil
	}

	if err := leaf.StartOfDay(); err != nil {
		return err
	}
	if err := leaf.SetDMSupply(); err != nil {
		return err
	}
	if err := leaf.SetNSupply(); err != nil {
		return err
	}
	if err := leaf.SetDMDemand(); err != nil {
		return err
	}
	if err := leaf.SetNDemand(); err != nil {
		return err
	}

	potential, dm, n := s.arbitrate(crop, rec)

	if err := leaf.SetDryMatterPotentialAllocation(potential); err != nil {
		return err
	}
	if err := leaf.SetDryMatterAllocation(dm); err != nil {
		return err
	}
	if err := leaf.SetNitrogenAllocation(n); err != nil {
		return err
	}
	if err := leaf.DoPotentialPlantGrowth(); err != nil {
		return err
	}
	if err := leaf.DoPotentialPlantPartitioning(); err != nil {
		return err
	}
	if err := leaf.DoActualPlantGrowth(); err != nil {
		return err
	}

	s.maybeTiller(crop)

	if matured := phen.Advance(rec.MaxT, rec.MinT); matured {
		if err := leaf.EndPlant(s.residue); err != nil {
			return err
		}
		s.ended++
	}
	return nil
}

// arbitrate computes the day's assimilation and splits it across the
// organ's demands. Radiation-limited assimilation is capped by
// transpiration-limited assimilation; storage retranslocation covers any
// shortfall against demand.
func (s *Sim) arbitrate(crop *components.Crop, rec weather.Record) (potential, dm organ.DMAllocation, n organ.NAllocation) {
	leaf := crop.Leaf
	soil := crop.Soil
	assim := crop.Assim

	intercepted := rec.Radn * leaf.Canopy.CoverGreen
	radiationLimited := s.cfg.Crop.RUE * intercepted

	te := s.cfg.Crop.TranspirationEfficiency
	var demandMM float64
	if te > 0 {
		demandMM = radiationLimited / te
	}
	soil.SetWaterDemand(demandMM)
	transpiration := soil.Transpire(demandMM)
	waterLimited := transpiration * te

	assim.PotentialBiomassTE = waterLimited
	assim.Photosynthesis = math.Min(radiationLimited, waterLimited)

	potential = organ.DMAllocation{
		Structural: leaf.DMDemand.Structural,
		Metabolic:  leaf.DMDemand.Metabolic,
		Storage:    leaf.DMDemand.Storage,
	}

	available := assim.Photosynthesis + leaf.DMSupply.Retranslocation
	dm.Structural = math.Min(leaf.DMDemand.Structural, available)
	available -= dm.Structural
	dm.Metabolic = math.Min(leaf.DMDemand.Metabolic, available)
	available -= dm.Metabolic
	dm.Storage = math.Min(leaf.DMDemand.Storage, available)

	// Storage reserves are only drawn down when assimilation alone could
	// not meet the day's allocation.
	granted := dm.Structural + dm.Metabolic + dm.Storage
	if shortfall := granted - assim.Photosynthesis; shortfall > 0 {
		dm.Retranslocation = math.Min(shortfall, leaf.DMSupply.Retranslocation)
	}

	// N demands are met from notional soil uptake; the reallocation supply
	// is exported to the rest of the plant.
	n = organ.NAllocation{
		Structural:   leaf.NDemand.Structural,
		Metabolic:    leaf.NDemand.Metabolic,
		Storage:      leaf.NDemand.Storage,
		Reallocation: leaf.NSupply.Reallocation,
	}
	return potential, dm, n
}

// collect snapshots one plot's end-of-day state for telemetry.
func (s *Sim) collect(plot *components.Plot, crop *components.Crop) telemetry.DailyStats {
	leaf := crop.Leaf
	sen := leaf.Senescence()
	potential := leaf.PotentialDM()
	return telemetry.DailyStats{
		Day:             s.day,
		Plot:            plot.Index,
		DaysAfterSowing: crop.Phenology.DaysAfterSowing,
		TT:              crop.Phenology.TT,

		LAI:        leaf.Canopy.LAI,
		LAIDead:    leaf.Canopy.LAIDead,
		DltLAI:     leaf.DltLAI(),
		CoverGreen: leaf.Canopy.CoverGreen,
		CoverDead:  leaf.Canopy.CoverDead,
		SLN:        leaf.Canopy.SLN,
		Height:     leaf.Canopy.Height,
		Culms:      len(leaf.Culms),

		LiveWt: leaf.Live.Wt(),
		DeadWt: leaf.Dead.Wt(),
		LiveN:  leaf.Live.N(),
		DeadN:  leaf.Dead.N(),

		SenescedLight: sen.LightLoss,
		SenescedWater: sen.WaterLoss,
		SenescedFrost: sen.FrostLoss,
		SenescedWt:    leaf.Senesced.Wt(),

		DMSupplyTotal: leaf.DMSupply.Total(),
		DMDemandTotal: leaf.DMDemand.Total(),
		DMPotential:   potential.Structural + potential.Metabolic + potential.Storage,
		NSupplyTotal:  leaf.NSupply.Total(),
		NDemandTotal:  leaf.NDemand.Total(),

		ExtractableWater: crop.Soil.ExtractableWater,
		WaterSDRatio:     crop.Soil.SupplyDemandRatio(),
	}
}
