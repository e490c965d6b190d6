package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/agrosim/canopy/config"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir       string
	dailyFile *os.File

	dailyHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	dailyPath := filepath.Join(dir, "daily.csv")
	f, err := os.Create(dailyPath)
	if err != nil {
		return nil, fmt.Errorf("creating daily.csv: %w", err)
	}
	om.dailyFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteDaily appends the day's per-plot records to daily.csv.
func (om *OutputManager) WriteDaily(records []DailyStats) error {
	if om == nil || len(records) == 0 {
		return nil
	}

	if !om.dailyHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.dailyFile); err != nil {
			return fmt.Errorf("writing daily stats: %w", err)
		}
		om.dailyHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.dailyFile); err != nil {
			return fmt.Errorf("writing daily stats: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil || om.dailyFile == nil {
		return nil
	}
	return om.dailyFile.Close()
}
