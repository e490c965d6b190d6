package components

// Stage is the plant development stage.
type Stage uint8

const (
	StageSowing Stage = iota
	StageEmerged
	StageMature
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageSowing:
		return "sowing"
	case StageEmerged:
		return "emerged"
	case StageMature:
		return "mature"
	}
	return "unknown"
}

// Phenology accumulates thermal time and tracks development stage. It backs
// the organ's plant-status gate: handlers run only for alive, emerged
// plants.
type Phenology struct {
	TT              float64
	DaysAfterSowing int
	Stage           Stage
	Alive           bool

	tBase       float64
	ttEmergence float64
	ttMaturity  float64
}

// NewPhenology creates a phenology tracker at sowing.
func NewPhenology(tBase, ttEmergence, ttMaturity float64) *Phenology {
	return &Phenology{
		Alive:       true,
		tBase:       tBase,
		ttEmergence: ttEmergence,
		ttMaturity:  ttMaturity,
	}
}

// Advance accumulates one day of thermal time and applies stage
// transitions. Returns true when the plant reached maturity this day.
func (p *Phenology) Advance(maxT, minT float64) bool {
	if !p.Alive {
		return false
	}
	p.DaysAfterSowing++

	dtt := (maxT+minT)/2 - p.tBase
	if dtt > 0 {
		p.TT += dtt
	}

	if p.Stage == StageSowing && p.TT >= p.ttEmergence {
		p.Stage = StageEmerged
	}
	if p.Stage == StageEmerged && p.TT >= p.ttMaturity {
		p.Stage = StageMature
		return true
	}
	return false
}

// Kill ends the plant's life (frost kill, manual termination).
func (p *Phenology) Kill() {
	p.Alive = false
}

// IsAlive reports whether the plant is alive.
func (p *Phenology) IsAlive() bool {
	return p.Alive
}

// IsEmerged reports whether the plant has emerged.
func (p *Phenology) IsEmerged() bool {
	return p.Stage >= StageEmerged
}
