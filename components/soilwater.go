package components

// SoilWater is the per-plot extractable water bucket. The organ reads
// extractable water and the supply/demand ratio from it and writes its
// computed water supply back; the simulation applies rain and
// transpiration.
type SoilWater struct {
	ExtractableWater float64 // mm
	Capacity         float64 // mm

	// WaterSupply is written back by the organ for arbitration.
	WaterSupply float64
	// WaterDemand is the day's transpiration demand, set by the
	// arbitrator before senescence runs.
	WaterDemand float64
}

// NewSoilWater creates a bucket with the given capacity and initial fill.
func NewSoilWater(capacity, initial float64) *SoilWater {
	if initial > capacity {
		initial = capacity
	}
	return &SoilWater{ExtractableWater: initial, Capacity: capacity}
}

// AddRain adds the retained fraction of rainfall, capped at capacity.
func (s *SoilWater) AddRain(rain, retention float64) {
	s.ExtractableWater += rain * retention
	if s.ExtractableWater > s.Capacity {
		s.ExtractableWater = s.Capacity
	}
}

// Transpire draws water from the bucket, bounded by what is available, and
// returns the amount actually extracted.
func (s *SoilWater) Transpire(demand float64) float64 {
	if demand <= 0 {
		return 0
	}
	extracted := demand
	if extracted > s.ExtractableWater {
		extracted = s.ExtractableWater
	}
	s.ExtractableWater -= extracted
	return extracted
}

// TotalExtractableWater returns the water currently available (mm).
func (s *SoilWater) TotalExtractableWater() float64 {
	return s.ExtractableWater
}

// SupplyDemandRatio is the day's water supply over demand, capped at 1.
// With no demand there is no stress and the ratio is 1.
func (s *SoilWater) SupplyDemandRatio() float64 {
	if s.WaterDemand <= 0 {
		return 1
	}
	ratio := s.WaterSupply / s.WaterDemand
	if ratio > 1 {
		return 1
	}
	return ratio
}

// SetWaterSupply records the organ's computed water supply.
func (s *SoilWater) SetWaterSupply(supply float64) {
	s.WaterSupply = supply
}

// SetWaterDemand records the day's transpiration demand.
func (s *SoilWater) SetWaterDemand(demand float64) {
	s.WaterDemand = demand
}
