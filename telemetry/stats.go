// Package telemetry collects and writes per-day simulation statistics.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// DailyStats holds one plot's organ state at the end of a simulated day.
type DailyStats struct {
	Day             int     `csv:"day"`
	Plot            int     `csv:"plot"`
	DaysAfterSowing int     `csv:"das"`
	TT              float64 `csv:"tt"`

	LAI        float64 `csv:"lai"`
	LAIDead    float64 `csv:"lai_dead"`
	DltLAI     float64 `csv:"dlt_lai"`
	CoverGreen float64 `csv:"cover_green"`
	CoverDead  float64 `csv:"cover_dead"`
	SLN        float64 `csv:"sln"`
	Height     float64 `csv:"height"`
	Culms      int     `csv:"culms"`

	LiveWt float64 `csv:"live_wt"`
	DeadWt float64 `csv:"dead_wt"`
	LiveN  float64 `csv:"live_n"`
	DeadN  float64 `csv:"dead_n"`

	SenescedLight float64 `csv:"sen_light"`
	SenescedWater float64 `csv:"sen_water"`
	SenescedFrost float64 `csv:"sen_frost"`
	SenescedWt    float64 `csv:"sen_wt"`

	DMSupplyTotal float64 `csv:"dm_supply"`
	DMDemandTotal float64 `csv:"dm_demand"`
	DMPotential   float64 `csv:"dm_potential"`
	NSupplyTotal  float64 `csv:"n_supply"`
	NDemandTotal  float64 `csv:"n_demand"`

	ExtractableWater float64 `csv:"esw"`
	WaterSDRatio     float64 `csv:"water_sd_ratio"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s DailyStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("day", s.Day),
		slog.Int("plot", s.Plot),
		slog.Int("das", s.DaysAfterSowing),
		slog.Float64("tt", s.TT),
		slog.Float64("lai", s.LAI),
		slog.Float64("lai_dead", s.LAIDead),
		slog.Float64("dlt_lai", s.DltLAI),
		slog.Float64("cover_green", s.CoverGreen),
		slog.Float64("cover_dead", s.CoverDead),
		slog.Float64("sln", s.SLN),
		slog.Float64("height", s.Height),
		slog.Int("culms", s.Culms),
		slog.Float64("live_wt", s.LiveWt),
		slog.Float64("dead_wt", s.DeadWt),
		slog.Float64("live_n", s.LiveN),
		slog.Float64("dead_n", s.DeadN),
		slog.Float64("sen_light", s.SenescedLight),
		slog.Float64("sen_water", s.SenescedWater),
		slog.Float64("sen_frost", s.SenescedFrost),
		slog.Float64("sen_wt", s.SenescedWt),
		slog.Float64("dm_potential", s.DMPotential),
		slog.Float64("esw", s.ExtractableWater),
		slog.Float64("water_sd_ratio", s.WaterSDRatio),
	)
}

// LogStats logs the day's stats using slog.
func (s DailyStats) LogStats() {
	slog.Info("stats", "record", s)
}

// FieldSummary aggregates the day's stats across plots.
type FieldSummary struct {
	Day        int
	Plots      int
	MeanLAI    float64
	StdLAI     float64
	MeanCover  float64
	MeanLiveWt float64
	TotalSenWt float64
}

// Summarize reduces a day's per-plot records to field means. Returns the
// zero summary for an empty day.
func Summarize(day []DailyStats) FieldSummary {
	if len(day) == 0 {
		return FieldSummary{}
	}

	lai := make([]float64, len(day))
	cover := make([]float64, len(day))
	liveWt := make([]float64, len(day))
	var senWt float64
	for i, s := range day {
		lai[i] = s.LAI
		cover[i] = s.CoverGreen
		liveWt[i] = s.LiveWt
		senWt += s.SenescedWt
	}

	return FieldSummary{
		Day:        day[0].Day,
		Plots:      len(day),
		MeanLAI:    stat.Mean(lai, nil),
		StdLAI:     stat.StdDev(lai, nil),
		MeanCover:  stat.Mean(cover, nil),
		MeanLiveWt: stat.Mean(liveWt, nil),
		TotalSenWt: senWt,
	}
}

// LogSummary logs a field summary using slog.
func (f FieldSummary) LogSummary() {
	slog.Info("field",
		"day", f.Day,
		"plots", f.Plots,
		"lai_mean", f.MeanLAI,
		"lai_std", f.StdLAI,
		"cover_mean", f.MeanCover,
		"live_wt_mean", f.MeanLiveWt,
		"sen_wt_total", f.TotalSenWt,
	)
}
