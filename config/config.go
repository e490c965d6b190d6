// Package config provides configuration loading and access for the
// simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Crop       CropConfig       `yaml:"crop"`
	Supply     SupplyConfig     `yaml:"supply"`
	Demand     DemandConfig     `yaml:"demand"`
	Senescence SenescenceConfig `yaml:"senescence"`
	Phenology  PhenologyConfig  `yaml:"phenology"`
	Soil       SoilConfig       `yaml:"soil"`
	Tillering  TilleringConfig  `yaml:"tillering"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// SimulationConfig holds run-level settings.
type SimulationConfig struct {
	MaxDays       int     `yaml:"max_days"`       // stop after N days (0 = run out the weather file)
	Plots         int     `yaml:"plots"`          // number of plots in the field
	SowingDensity float64 `yaml:"sowing_density"` // plants per m2
	SowingDay     int     `yaml:"sowing_day"`     // weather-file day index to sow on
}

// CurveConfig is a piecewise-linear response curve given as parallel
// x and y point lists.
type CurveConfig struct {
	X []float64 `yaml:"x"`
	Y []float64 `yaml:"y"`
}

// CropConfig holds organ identity, initial state, and canopy geometry.
type CropConfig struct {
	Name      string `yaml:"name"`       // crop type, e.g. "sorghum"
	OrganName string `yaml:"organ_name"` // e.g. "Leaf"

	InitialLAI       float64 `yaml:"initial_lai"`       // m2/m2 per plant at sowing
	InitialWt        float64 `yaml:"initial_wt"`        // seed-reserve structural DM, g per plant
	InitialN         float64 `yaml:"initial_n"`         // seed-reserve structural N, g per plant
	FractionStanding float64 `yaml:"fraction_standing"` // residue fraction left standing at ending

	ExtinctionCoefficient     float64 `yaml:"extinction_coefficient"`
	DeadExtinctionCoefficient float64 `yaml:"dead_extinction_coefficient"`
	AreaPerDM                 float64 `yaml:"area_per_dm"` // m2 leaf per g structural DM

	// LeafAreaTT is potential leaf area laid down per culm per day as a
	// function of accumulated thermal time.
	LeafAreaTT CurveConfig `yaml:"leaf_area_tt"`
	// HeightTT is canopy height (mm) as a function of thermal time.
	HeightTT CurveConfig `yaml:"height_tt"`
	// ExpansionStressSW is the expansion stress factor as a function of the
	// soil water supply/demand ratio.
	ExpansionStressSW CurveConfig `yaml:"expansion_stress_sw"`

	RUE                     float64 `yaml:"rue"`                      // radiation use efficiency, g/MJ
	TranspirationEfficiency float64 `yaml:"transpiration_efficiency"` // g biomass per mm water
}

// SupplyConfig holds the daily supply rate factors.
type SupplyConfig struct {
	SenescenceRate          float64 `yaml:"senescence_rate"`
	DMReallocationFactor    float64 `yaml:"dm_reallocation_factor"`
	DMRetranslocationFactor float64 `yaml:"dm_retranslocation_factor"`
	NReallocationFactor     float64 `yaml:"n_reallocation_factor"`
	NRetranslocationFactor  float64 `yaml:"n_retranslocation_factor"`
}

// DemandConfig holds the daily demand rates (g/m2/day).
type DemandConfig struct {
	StructuralDM float64 `yaml:"structural_dm"`
	MetabolicDM  float64 `yaml:"metabolic_dm"`
	StorageDM    float64 `yaml:"storage_dm"`
	StructuralN  float64 `yaml:"structural_n"`
	MetabolicN   float64 `yaml:"metabolic_n"`
	StorageN     float64 `yaml:"storage_n"`
}

// SenescenceConfig holds the senescence engine thresholds and smoothing
// constants.
type SenescenceConfig struct {
	RadiationCritical    float64 `yaml:"radiation_critical"`
	LightTimeConstant    float64 `yaml:"light_time_constant"`
	WaterTimeConstant    float64 `yaml:"water_time_constant"`
	WaterStressThreshold float64 `yaml:"water_stress_threshold"`
	FrostKillTemperature float64 `yaml:"frost_kill_temperature"`
	LightWindow          int     `yaml:"light_window"`
	WaterWindow          int     `yaml:"water_window"`
	RatioWindow          int     `yaml:"ratio_window"`
}

// PhenologyConfig holds thermal-time stage thresholds.
type PhenologyConfig struct {
	TBase       float64 `yaml:"t_base"`       // base temperature for thermal time, C
	TTEmergence float64 `yaml:"tt_emergence"` // degree-days sowing to emergence
	TTMaturity  float64 `yaml:"tt_maturity"`  // degree-days sowing to maturity
}

// SoilConfig holds the extractable water bucket parameters.
type SoilConfig struct {
	CapacityMM float64 `yaml:"capacity_mm"` // plant-available water capacity
	InitialMM  float64 `yaml:"initial_mm"`  // water at sowing
	// CoverRetention scales how much rainfall reaches the bucket.
	CoverRetention float64 `yaml:"cover_retention"`
}

// TilleringConfig holds the culm addition rules.
type TilleringConfig struct {
	Enabled bool `yaml:"enabled"`
	// MaxCulms caps total culms including the main stem.
	MaxCulms int `yaml:"max_culms"`
	// TTPerTiller is the thermal time between successive tillers.
	TTPerTiller float64 `yaml:"tt_per_tiller"`
	// MinSupplyDemandRatio gates tillering off under water stress.
	MinSupplyDemandRatio float64 `yaml:"min_supply_demand_ratio"`
	// ProportionDecay scales each successive tiller's proportion.
	ProportionDecay float64 `yaml:"proportion_decay"`
	// VerticalAdjustmentStep grows with each tiller, shrinking its leaves.
	VerticalAdjustmentStep float64 `yaml:"vertical_adjustment_step"`
}

// TelemetryConfig holds output settings.
type TelemetryConfig struct {
	LogStats bool `yaml:"log_stats"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if c.Simulation.Plots < 1 {
		return fmt.Errorf("config: simulation.plots must be at least 1")
	}
	if c.Simulation.SowingDensity <= 0 {
		return fmt.Errorf("config: simulation.sowing_density must be positive")
	}
	if c.Crop.ExtinctionCoefficient <= 0 {
		return fmt.Errorf("config: crop.extinction_coefficient must be positive")
	}
	if c.Senescence.LightWindow < 1 || c.Senescence.WaterWindow < 1 || c.Senescence.RatioWindow < 1 {
		return fmt.Errorf("config: senescence windows must be at least 1 day")
	}
	if c.Phenology.TTMaturity <= c.Phenology.TTEmergence {
		return fmt.Errorf("config: phenology.tt_maturity must exceed tt_emergence")
	}
	for name, curve := range map[string]CurveConfig{
		"crop.leaf_area_tt":        c.Crop.LeafAreaTT,
		"crop.height_tt":           c.Crop.HeightTT,
		"crop.expansion_stress_sw": c.Crop.ExpansionStressSW,
	} {
		if len(curve.X) < 2 || len(curve.X) != len(curve.Y) {
			return fmt.Errorf("config: %s needs matching x/y lists of at least 2 points", name)
		}
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
