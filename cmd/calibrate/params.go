// Package main provides CMA-ES calibration of canopy parameters against
// an observed leaf area index series.
package main

import (
	"github.com/agrosim/canopy/config"
)

// ParamSpec defines a single calibratable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all calibratable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of calibratable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Canopy geometry
			{Name: "extinction_coefficient", Path: "crop.extinction_coefficient", Min: 0.3, Max: 1.2, Default: 0.7},
			{Name: "area_per_dm", Path: "crop.area_per_dm", Min: 0.002, Max: 0.012, Default: 0.006},
			// Growth
			{Name: "rue", Path: "crop.rue", Min: 0.8, Max: 2.2, Default: 1.25},
			// Senescence
			{Name: "radiation_critical", Path: "senescence.radiation_critical", Min: 0.5, Max: 5.0, Default: 2.0},
			{Name: "light_time_constant", Path: "senescence.light_time_constant", Min: 3.0, Max: 30.0, Default: 10.0},
			{Name: "water_time_constant", Path: "senescence.water_time_constant", Min: 3.0, Max: 30.0, Default: 10.0},
			{Name: "water_stress_threshold", Path: "senescence.water_stress_threshold", Min: 0.05, Max: 0.6, Default: 0.25},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	i := 0
	cfg.Crop.ExtinctionCoefficient = clamped[i]
	i++
	cfg.Crop.AreaPerDM = clamped[i]
	i++
	cfg.Crop.RUE = clamped[i]
	i++
	cfg.Senescence.RadiationCritical = clamped[i]
	i++
	cfg.Senescence.LightTimeConstant = clamped[i]
	i++
	cfg.Senescence.WaterTimeConstant = clamped[i]
	i++
	cfg.Senescence.WaterStressThreshold = clamped[i]
}
