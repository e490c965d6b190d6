package organ

import (
	"math"
	"testing"
)

func TestCoverGreenFor(t *testing.T) {
	tests := []struct {
		name            string
		lai, extinction float64
		want            float64
	}{
		{"zero lai", 0, 0.7, 0},
		{"unit product", 2.0, 0.5, 1 - math.Exp(-1)},
		{"typical sorghum", 3.0, 0.7, 1 - math.Exp(-2.1)},
		{"negative lai clamps", -1, 0.7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoverGreenFor(tt.lai, tt.extinction); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CoverGreenFor(%g, %g) = %g, want %g", tt.lai, tt.extinction, got, tt.want)
			}
		})
	}
}

func TestCoverGreenFor_NeverReachesOne(t *testing.T) {
	got := CoverGreenFor(1e6, 1.0)
	if got >= 1 {
		t.Errorf("cover = %g, must stay strictly below 1", got)
	}
	if got < 0.999 {
		t.Errorf("cover = %g, expected near the ceiling for a huge canopy", got)
	}
}

func TestCoverTotal(t *testing.T) {
	c := CanopyState{CoverGreen: 0.5, CoverDead: 0.2}
	want := 1 - 0.5*0.8
	if got := c.CoverTotal(); math.Abs(got-want) > 1e-12 {
		t.Errorf("CoverTotal() = %f, want %f", got, want)
	}
}

func TestUpdateCanopy(t *testing.T) {
	l, _ := newTestLeaf(t)
	l.Live.StructuralN = 2.4
	l.Canopy.LAI = 2.0
	l.Canopy.LAIDead = 0.5

	l.updateCanopy()

	if math.Abs(l.Canopy.SLN-1.2) > 1e-9 {
		t.Errorf("SLN = %f, want 2.4 / 2.0 = 1.2", l.Canopy.SLN)
	}
	wantGreen := 1 - math.Exp(-0.7*2.0)
	if math.Abs(l.Canopy.CoverGreen-wantGreen) > 1e-9 {
		t.Errorf("cover green = %f, want %f", l.Canopy.CoverGreen, wantGreen)
	}
	wantDead := 1 - math.Exp(-0.4*0.5)
	if math.Abs(l.Canopy.CoverDead-wantDead) > 1e-9 {
		t.Errorf("cover dead = %f, want %f", l.Canopy.CoverDead, wantDead)
	}
	if l.Canopy.Height != 900 {
		t.Errorf("height = %f, want provider value 900", l.Canopy.Height)
	}
}

func TestUpdateCanopy_ZeroLAI(t *testing.T) {
	l, _ := newTestLeaf(t)
	l.Live.StructuralN = 1.0
	l.Canopy.LAI = 0

	l.updateCanopy()

	if l.Canopy.SLN != 0 {
		t.Errorf("SLN = %f, want guarded 0 at zero LAI", l.Canopy.SLN)
	}
	if l.Canopy.CoverGreen != 0 {
		t.Errorf("cover green = %f, want 0", l.Canopy.CoverGreen)
	}
}
