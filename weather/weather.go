// Package weather loads and serves daily weather records. Records are read
// once from CSV and queried read-only by a cursor that the simulation
// advances one day at a time.
package weather

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// Record is one day of weather readings.
type Record struct {
	Year int     `csv:"year"`
	Day  int     `csv:"day"`  // day of year
	Radn float64 `csv:"radn"` // incident solar radiation, MJ/m2
	MaxT float64 `csv:"maxt"` // maximum air temperature, C
	MinT float64 `csv:"mint"` // minimum air temperature, C
	Rain float64 `csv:"rain"` // rainfall, mm
}

// Records holds a loaded weather series and the current-day cursor.
type Records struct {
	days   []Record
	cursor int
}

// Load reads a weather series from a CSV file.
func Load(path string) (*Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening weather file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a weather series from CSV data.
func Parse(r io.Reader) (*Records, error) {
	var days []Record
	if err := gocsv.Unmarshal(r, &days); err != nil {
		return nil, fmt.Errorf("parsing weather data: %w", err)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("weather data is empty")
	}
	for i, d := range days {
		if d.Radn < 0 {
			return nil, fmt.Errorf("weather record %d: negative radiation %g", i, d.Radn)
		}
		if d.MaxT < d.MinT {
			return nil, fmt.Errorf("weather record %d: maxt %g below mint %g", i, d.MaxT, d.MinT)
		}
	}
	return &Records{days: days}, nil
}

// Len returns the number of days loaded.
func (r *Records) Len() int {
	return len(r.days)
}

// Seek positions the cursor on day i.
func (r *Records) Seek(i int) error {
	if i < 0 || i >= len(r.days) {
		return fmt.Errorf("weather day %d out of range [0,%d)", i, len(r.days))
	}
	r.cursor = i
	return nil
}

// Advance moves the cursor one day forward. Returns false at end of data.
func (r *Records) Advance() bool {
	if r.cursor+1 >= len(r.days) {
		return false
	}
	r.cursor++
	return true
}

// Today returns the record under the cursor.
func (r *Records) Today() Record {
	return r.days[r.cursor]
}

// Radiation is the day's incident solar radiation (MJ/m2).
func (r *Records) Radiation() float64 {
	return r.days[r.cursor].Radn
}

// MinTemperature is the day's minimum air temperature (C).
func (r *Records) MinTemperature() float64 {
	return r.days[r.cursor].MinT
}

// MaxTemperature is the day's maximum air temperature (C).
func (r *Records) MaxTemperature() float64 {
	return r.days[r.cursor].MaxT
}

// Rain is the day's rainfall (mm).
func (r *Records) Rain() float64 {
	return r.days[r.cursor].Rain
}
