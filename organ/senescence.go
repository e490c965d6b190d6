package organ

import "math"

// SenescenceParams holds the threshold and smoothing constants for the
// three senescence drivers.
type SenescenceParams struct {
	// RadiationCritical is the transmitted-radiation threshold (MJ/m2)
	// below which light competition drives senescence.
	RadiationCritical float64
	// LightTimeConstant and WaterTimeConstant are relaxation times (days)
	// toward the smoothed equilibrium LAI.
	LightTimeConstant float64
	WaterTimeConstant float64
	// WaterStressThreshold is the smoothed water supply/demand ratio below
	// which water senescence engages.
	WaterStressThreshold float64
	// FrostKillTemperature is the minimum temperature below which the
	// whole canopy is lost.
	FrostKillTemperature float64
	// Window capacities in days.
	LightWindow int
	WaterWindow int
	RatioWindow int
}

// DefaultSenescenceParams returns the standard parameterisation.
func DefaultSenescenceParams() SenescenceParams {
	return SenescenceParams{
		RadiationCritical:    2.0,
		LightTimeConstant:    10.0,
		WaterTimeConstant:    10.0,
		WaterStressThreshold: 0.25,
		FrostKillTemperature: 10.0,
		LightWindow:          10,
		WaterWindow:          10,
		RatioWindow:          5,
	}
}

// SenescenceEngine determines the day's LAI loss as the maximum of three
// independent stress-driven estimates. The mechanisms are dominance-based,
// never additive: the governing stress is whichever demands the largest
// loss.
type SenescenceEngine struct {
	params SenescenceParams

	lightEquilibrium  *MovingWindow
	waterEquilibrium  *MovingWindow
	waterSupplyDemand *MovingWindow

	// Per-day component losses, kept for telemetry.
	LightLoss float64
	WaterLoss float64
	FrostLoss float64
}

// NewSenescenceEngine creates an engine with the given parameters.
func NewSenescenceEngine(params SenescenceParams) *SenescenceEngine {
	return &SenescenceEngine{
		params:            params,
		lightEquilibrium:  NewMovingWindow(params.LightWindow),
		waterEquilibrium:  NewMovingWindow(params.WaterWindow),
		waterSupplyDemand: NewMovingWindow(params.RatioWindow),
	}
}

// SenescenceInputs carries the day's readings into the engine.
type SenescenceInputs struct {
	LAI                float64
	Extinction         float64
	Radiation          float64
	MinTemperature     float64
	Photosynthesis     float64
	PotentialBiomassTE float64
	// SupplyDemandRatio is the water supply over demand for the day,
	// supplied by the soil-water collaborator.
	SupplyDemandRatio float64
}

// Compute updates the moving averages and returns the day's LAI loss.
func (e *SenescenceEngine) Compute(in SenescenceInputs) float64 {
	e.LightLoss = e.lightLoss(in)
	e.WaterLoss = e.waterLoss(in)
	e.FrostLoss = e.frostLoss(in)
	return math.Max(e.LightLoss, math.Max(e.WaterLoss, e.FrostLoss))
}

// lightLoss relaxes LAI toward the smoothed equilibrium sustainable under
// the critical light transmission.
func (e *SenescenceEngine) lightLoss(in SenescenceInputs) float64 {
	critTransmission := divide(e.params.RadiationCritical, in.Radiation, 1)

	equilibrium := in.LAI
	if critTransmission > 0 {
		equilibrium = divide(-math.Log(critTransmission), in.Extinction, in.LAI)
	}
	e.lightEquilibrium.Push(equilibrium)

	transmitted := in.Radiation * math.Exp(-in.Extinction*in.LAI)
	if transmitted >= e.params.RadiationCritical {
		return 0
	}

	loss := (in.LAI - e.lightEquilibrium.Average()) / e.params.LightTimeConstant
	return clampLoss(loss, in.LAI)
}

// waterLoss relaxes LAI toward the canopy size supportable by
// transpiration-limited assimilation, gated on the smoothed water
// supply/demand ratio.
func (e *SenescenceEngine) waterLoss(in SenescenceInputs) float64 {
	coverGreen := CoverGreenFor(in.LAI, in.Extinction)
	intercepted := in.Radiation * coverGreen

	effectiveRUE := divide(in.Photosynthesis, intercepted, 0)
	criticalRadiation := divide(in.PotentialBiomassTE, effectiveRUE, 0)
	criticalInterception := divide(criticalRadiation, in.Radiation, 0)

	equilibrium := in.LAI
	if criticalInterception < 1 {
		if criticalInterception < 0 {
			criticalInterception = 0
		}
		equilibrium = divide(-math.Log(1-criticalInterception), in.Extinction, in.LAI)
	}
	e.waterEquilibrium.Push(equilibrium)
	e.waterSupplyDemand.Push(in.SupplyDemandRatio)

	if e.waterSupplyDemand.Average() >= e.params.WaterStressThreshold {
		return 0
	}

	loss := (in.LAI - e.waterEquilibrium.Average()) / e.params.WaterTimeConstant
	return clampLoss(loss, in.LAI)
}

// frostLoss defoliates the whole canopy below the kill temperature.
func (e *SenescenceEngine) frostLoss(in SenescenceInputs) float64 {
	if in.MinTemperature < e.params.FrostKillTemperature {
		return in.LAI
	}
	return 0
}

// Reset clears the moving averages and component losses.
func (e *SenescenceEngine) Reset() {
	e.lightEquilibrium.Reset()
	e.waterEquilibrium.Reset()
	e.waterSupplyDemand.Reset()
	e.LightLoss = 0
	e.WaterLoss = 0
	e.FrostLoss = 0
}

func clampLoss(loss, lai float64) float64 {
	if loss < 0 {
		return 0
	}
	if loss > lai {
		return lai
	}
	return loss
}
