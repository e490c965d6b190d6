package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/agrosim/canopy/config"
	"github.com/agrosim/canopy/sim"
	"github.com/agrosim/canopy/telemetry"
	"github.com/agrosim/canopy/weather"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	weatherPath := flag.String("weather", "", "Path to daily weather CSV (required)")
	maxDays := flag.Int("max-days", 0, "Stop after N days (0 = use config, or run out the weather file)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output daily field stats via slog")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *weatherPath == "" {
		slog.Error("missing required -weather flag")
		os.Exit(1)
	}

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	met, err := weather.Load(*weatherPath)
	if err != nil {
		slog.Error("failed to load weather", "error", err)
		os.Exit(1)
	}

	s, err := sim.New(cfg, met)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output dir", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to snapshot config", "error", err)
		os.Exit(1)
	}

	limit := cfg.Simulation.MaxDays
	if *maxDays > 0 {
		limit = *maxDays
	}
	doLog := *logStats || cfg.Telemetry.LogStats

	slog.Info("starting simulation",
		"plots", cfg.Simulation.Plots,
		"crop", cfg.Crop.Name,
		"weather_days", met.Len(),
		"max_days", limit,
	)

	for !s.Done() {
		stats, err := s.Step()
		if err != nil {
			slog.Error("simulation aborted", "error", err)
			os.Exit(1)
		}
		if err := output.WriteDaily(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
			os.Exit(1)
		}
		if doLog {
			telemetry.Summarize(stats).LogSummary()
		}
		if limit > 0 && s.Day() >= limit {
			break
		}
	}

	residue := s.Residue()
	slog.Info("run complete",
		"days", s.Day(),
		"residue_mass", residue.Mass,
		"residue_n", residue.N,
	)
}
