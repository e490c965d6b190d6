package organ

import (
	"math"
	"testing"
)

func benignInputs(lai float64) SenescenceInputs {
	return SenescenceInputs{
		LAI:                lai,
		Extinction:         0.7,
		Radiation:          25,
		MinTemperature:     15,
		Photosynthesis:     10,
		PotentialBiomassTE: 20,
		SupplyDemandRatio:  1,
	}
}

func TestSenescence_NoStressNoLoss(t *testing.T) {
	e := NewSenescenceEngine(DefaultSenescenceParams())

	if got := e.Compute(benignInputs(2.0)); got != 0 {
		t.Errorf("loss = %f, want 0 under benign conditions", got)
	}
	if e.LightLoss != 0 || e.WaterLoss != 0 || e.FrostLoss != 0 {
		t.Errorf("component losses %f/%f/%f, want all 0", e.LightLoss, e.WaterLoss, e.FrostLoss)
	}
}

func TestSenescence_FrostKillsWholeCanopy(t *testing.T) {
	e := NewSenescenceEngine(DefaultSenescenceParams())
	in := benignInputs(2.0)
	in.MinTemperature = 5 // below the 10 C kill threshold

	if got := e.Compute(in); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("loss = %f, want the whole canopy 2.0", got)
	}
	if e.FrostLoss != 2.0 {
		t.Errorf("frost component = %f, want 2.0", e.FrostLoss)
	}
}

func TestSenescence_FrostThresholdIsStrict(t *testing.T) {
	e := NewSenescenceEngine(DefaultSenescenceParams())
	in := benignInputs(2.0)
	in.MinTemperature = 10 // exactly at threshold, not below

	if e.Compute(in); e.FrostLoss != 0 {
		t.Errorf("frost component = %f at the threshold, want 0", e.FrostLoss)
	}
}

func TestSenescence_LightCompetition(t *testing.T) {
	params := DefaultSenescenceParams()
	e := NewSenescenceEngine(params)

	in := benignInputs(5.0)
	in.Radiation = 10

	// Transmitted radiation: 10 x exp(-0.7 x 5) = 0.30 MJ, below the 2.0
	// critical, so the canopy relaxes toward the sustainable equilibrium
	// -ln(2/10)/0.7 over the 10-day time constant.
	equilibrium := -math.Log(2.0/10.0) / 0.7
	want := (5.0 - equilibrium) / 10.0

	got := e.Compute(in)
	if math.Abs(e.LightLoss-want) > 1e-9 {
		t.Errorf("light loss = %f, want %f", e.LightLoss, want)
	}
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("total loss = %f, want light-driven %f", got, want)
	}
}

func TestSenescence_LightLossGatedOnTransmission(t *testing.T) {
	e := NewSenescenceEngine(DefaultSenescenceParams())

	// Sparse canopy transmits plenty of light, no loss even at low radiation.
	in := benignInputs(0.3)
	in.Radiation = 10

	if e.Compute(in); e.LightLoss != 0 {
		t.Errorf("light loss = %f for a sparse canopy, want 0", e.LightLoss)
	}
}

func TestSenescence_WaterStressGatedOnSmoothedRatio(t *testing.T) {
	e := NewSenescenceEngine(DefaultSenescenceParams())

	// Four good days fill the 5-day ratio window.
	for i := 0; i < 4; i++ {
		e.Compute(benignInputs(3.0))
	}

	// One dry day: the smoothed ratio (4x1.0 + 0.0)/5 = 0.8 still clears
	// the 0.25 threshold, so no water loss yet.
	dry := benignInputs(3.0)
	dry.SupplyDemandRatio = 0
	dry.PotentialBiomassTE = 1
	e.Compute(dry)
	if e.WaterLoss != 0 {
		t.Errorf("water loss = %f after one dry day, want 0 (smoothed)", e.WaterLoss)
	}

	// Sustained drought drags the window below the threshold.
	for i := 0; i < 5; i++ {
		e.Compute(dry)
	}
	if e.WaterLoss <= 0 {
		t.Error("expected water-driven loss under sustained drought")
	}
	if e.WaterLoss > 3.0 {
		t.Errorf("water loss = %f exceeds the canopy", e.WaterLoss)
	}
}

func TestSenescence_DominantStressNotAdditive(t *testing.T) {
	e := NewSenescenceEngine(DefaultSenescenceParams())

	// Frost and light competition both active: the loss is the frost kill
	// (the whole canopy), not frost plus the light-driven estimate.
	in := benignInputs(5.0)
	in.Radiation = 10
	in.MinTemperature = 0

	got := e.Compute(in)
	if math.Abs(got-5.0) > 1e-9 {
		t.Errorf("loss = %f, want max of components 5.0, not their sum", got)
	}
	if e.LightLoss <= 0 {
		t.Error("light component should also be active in this scenario")
	}
}

func TestSenescence_LossNeverExceedsLAI(t *testing.T) {
	params := DefaultSenescenceParams()
	params.LightTimeConstant = 0.01 // absurdly fast relaxation
	e := NewSenescenceEngine(params)

	in := benignInputs(4.0)
	in.Radiation = 10

	got := e.Compute(in)
	if got < 0 || got > 4.0 {
		t.Errorf("loss = %f, must stay within [0, LAI]", got)
	}
}

func TestSenescence_ZeroRadiationGuarded(t *testing.T) {
	e := NewSenescenceEngine(DefaultSenescenceParams())
	in := benignInputs(2.0)
	in.Radiation = 0
	in.Photosynthesis = 0

	got := e.Compute(in)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("loss = %f, want finite under zero radiation", got)
	}
	if got < 0 || got > 2.0 {
		t.Errorf("loss = %f, out of range", got)
	}
}

func TestSenescence_Reset(t *testing.T) {
	e := NewSenescenceEngine(DefaultSenescenceParams())
	in := benignInputs(2.0)
	in.MinTemperature = -5
	e.Compute(in)

	e.Reset()

	if e.LightLoss != 0 || e.WaterLoss != 0 || e.FrostLoss != 0 {
		t.Error("Reset must clear component losses")
	}
}
