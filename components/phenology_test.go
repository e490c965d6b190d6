package components

import (
	"math"
	"testing"
)

func TestPhenology_ThermalTimeAccumulation(t *testing.T) {
	p := NewPhenology(8, 60, 1600)

	p.Advance(30, 18) // mean 24, dtt 16
	if math.Abs(p.TT-16.0) > 1e-12 {
		t.Errorf("TT = %f, want 16.0", p.TT)
	}
	if p.DaysAfterSowing != 1 {
		t.Errorf("DAS = %d, want 1", p.DaysAfterSowing)
	}

	// A freezing day accumulates nothing, never negative.
	p.Advance(5, -5)
	if math.Abs(p.TT-16.0) > 1e-12 {
		t.Errorf("TT after cold day = %f, want unchanged 16.0", p.TT)
	}
}

func TestPhenology_StageTransitions(t *testing.T) {
	p := NewPhenology(8, 60, 1600)

	if p.Stage != StageSowing || p.IsEmerged() {
		t.Fatal("should start at sowing, not emerged")
	}

	// 16 degree-days per day: emergence at 60 needs 4 days.
	days := 0
	for p.Stage == StageSowing {
		if p.Advance(30, 18) {
			t.Fatal("must not report maturity before emergence")
		}
		days++
		if days > 10 {
			t.Fatal("never emerged")
		}
	}
	if days != 4 {
		t.Errorf("emerged after %d days, want 4", days)
	}
	if !p.IsEmerged() {
		t.Error("IsEmerged() false after emergence")
	}

	mature := false
	for i := 0; i < 200 && !mature; i++ {
		mature = p.Advance(30, 18)
	}
	if !mature {
		t.Fatal("never matured")
	}
	if p.Stage != StageMature {
		t.Errorf("stage = %s, want mature", p.Stage)
	}
	if p.TT < 1600 {
		t.Errorf("TT = %f at maturity, want >= 1600", p.TT)
	}
}

func TestPhenology_Kill(t *testing.T) {
	p := NewPhenology(8, 60, 1600)
	p.Kill()

	if p.IsAlive() {
		t.Error("IsAlive() true after Kill")
	}
	ttBefore := p.TT
	if p.Advance(30, 18) {
		t.Error("dead plant must not advance to maturity")
	}
	if p.TT != ttBefore {
		t.Error("dead plant must not accumulate thermal time")
	}
}

func TestStageString(t *testing.T) {
	if StageSowing.String() != "sowing" || StageEmerged.String() != "emerged" || StageMature.String() != "mature" {
		t.Error("stage names wrong")
	}
}
