package sim

import (
	"math"

	"github.com/agrosim/canopy/components"
	"github.com/agrosim/canopy/organ"
)

// maybeTiller adds a culm when the plant has accumulated enough thermal
// time since the last tiller and is not water stressed. Each successive
// tiller carries a smaller proportion and a larger vertical adjustment.
func (s *Sim) maybeTiller(crop *components.Crop) {
	t := s.cfg.Tillering
	if !t.Enabled {
		return
	}
	leaf := crop.Leaf
	phen := crop.Phenology

	if leaf.State() != organ.StateSown || !phen.IsEmerged() {
		return
	}
	if len(leaf.Culms) >= t.MaxCulms {
		return
	}

	nextTillerTT := s.cfg.Phenology.TTEmergence + float64(len(leaf.Culms))*t.TTPerTiller
	if phen.TT < nextTillerTT {
		return
	}
	if crop.Soil.SupplyDemandRatio() < t.MinSupplyDemandRatio {
		return
	}

	n := len(leaf.Culms)
	leafStage := phen.TT / t.TTPerTiller
	leaf.AddCulm(
		leafStage,
		float64(n)*t.VerticalAdjustmentStep,
		math.Pow(t.ProportionDecay, float64(n)),
	)
}
