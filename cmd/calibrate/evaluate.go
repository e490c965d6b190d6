package main

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/agrosim/canopy/config"
	"github.com/agrosim/canopy/sim"
	"github.com/agrosim/canopy/weather"
)

// Observation is one measured leaf area index point.
type Observation struct {
	Day int     `csv:"day"` // simulation day, counted from sowing
	LAI float64 `csv:"lai"`
}

// LoadObservations reads an observed LAI series from a CSV file.
func LoadObservations(path string) ([]Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open observations: %w", err)
	}
	defer f.Close()

	var obs []Observation
	if err := gocsv.Unmarshal(f, &obs); err != nil {
		return nil, fmt.Errorf("parse observations: %w", err)
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("observations file %s has no rows", path)
	}
	return obs, nil
}

// Evaluator runs headless simulations and scores them against observations.
type Evaluator struct {
	params     *ParamVector
	baseConfig *config.Config
	metRaw     []byte // weather CSV, re-parsed per run to reset the cursor
	observed   []Observation
	maxDays    int
}

// NewEvaluator creates an evaluator over the given weather file and
// observed LAI series.
func NewEvaluator(params *ParamVector, baseCfg *config.Config, weatherPath, observedPath string, maxDays int) (*Evaluator, error) {
	raw, err := os.ReadFile(weatherPath)
	if err != nil {
		return nil, fmt.Errorf("read weather: %w", err)
	}
	// Parse once up front so a malformed file fails before optimization starts.
	if _, err := weather.Parse(bytes.NewReader(raw)); err != nil {
		return nil, err
	}

	obs, err := LoadObservations(observedPath)
	if err != nil {
		return nil, err
	}

	return &Evaluator{
		params:     params,
		baseConfig: baseCfg,
		metRaw:     raw,
		observed:   obs,
		maxDays:    maxDays,
	}, nil
}

// Evaluate runs one simulation with the given raw parameter values and
// returns the root mean square error between simulated and observed LAI.
func (e *Evaluator) Evaluate(raw []float64) float64 {
	cfg := *e.baseConfig
	e.params.ApplyToConfig(&cfg, raw)
	cfg.Simulation.Plots = 1

	met, err := weather.Parse(bytes.NewReader(e.metRaw))
	if err != nil {
		return math.Inf(1)
	}

	s, err := sim.New(&cfg, met)
	if err != nil {
		return math.Inf(1)
	}

	// Simulated LAI by simulation day.
	laiByDay := make(map[int]float64, e.maxDays)
	for day := 0; !s.Done() && day < e.maxDays; day++ {
		stats, err := s.Step()
		if err != nil {
			return math.Inf(1)
		}
		for _, st := range stats {
			laiByDay[st.Day] = st.LAI
		}
	}

	var sumSq float64
	n := 0
	for _, ob := range e.observed {
		simLAI, ok := laiByDay[ob.Day]
		if !ok {
			continue
		}
		diff := simLAI - ob.LAI
		sumSq += diff * diff
		n++
	}
	if n == 0 {
		return math.Inf(1)
	}
	return math.Sqrt(sumSq / float64(n))
}
