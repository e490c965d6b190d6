package organ

import (
	"math"
	"testing"
)

func TestLeaf_DMSupply(t *testing.T) {
	l, _ := newTestLeaf(t)
	l.Live.StorageWt = 100

	// Rate 0.1, reallocation factor 0.5, retranslocation factor 0.2.
	if err := l.SetDMSupply(); err != nil {
		t.Fatalf("SetDMSupply: %v", err)
	}

	if math.Abs(l.DMSupply.Reallocation-5.0) > 1e-9 {
		t.Errorf("reallocation = %f, want 100 x 0.1 x 0.5 = 5.0", l.DMSupply.Reallocation)
	}
	if math.Abs(l.DMSupply.Retranslocation-19.0) > 1e-9 {
		t.Errorf("retranslocation = %f, want (100-5) x 0.2 = 19.0", l.DMSupply.Retranslocation)
	}
	if l.DMSupply.Fixation != 0 || l.DMSupply.Uptake != 0 {
		t.Error("leaf supplies no fixation or uptake")
	}
	if math.Abs(l.DMSupply.Total()-24.0) > 1e-9 {
		t.Errorf("total = %f, want 24.0", l.DMSupply.Total())
	}
}

func TestLeaf_DMSupplyRecomputedNotAccumulated(t *testing.T) {
	l, _ := newTestLeaf(t)
	l.Live.StorageWt = 100

	if err := l.SetDMSupply(); err != nil {
		t.Fatalf("SetDMSupply: %v", err)
	}
	first := l.DMSupply
	if err := l.SetDMSupply(); err != nil {
		t.Fatalf("SetDMSupply: %v", err)
	}

	if l.DMSupply != first {
		t.Errorf("recompute with unchanged state gave %+v, want %+v", l.DMSupply, first)
	}
}

func TestLeaf_DMSupplyEmptyStorage(t *testing.T) {
	l, _ := newTestLeaf(t)
	l.Live.StorageWt = 0

	if err := l.SetDMSupply(); err != nil {
		t.Fatalf("SetDMSupply: %v", err)
	}
	if l.DMSupply.Total() != 0 {
		t.Errorf("total = %f, want 0 with empty storage", l.DMSupply.Total())
	}
}

func TestLeaf_NSupply(t *testing.T) {
	l, _ := newTestLeaf(t)
	l.Live.StorageN = 3.0
	l.Live.MetabolicN = 1.0

	// Labile 4.0, rate 0.1, realloc factor 0.4, retrans factor 0.3.
	if err := l.SetNSupply(); err != nil {
		t.Fatalf("SetNSupply: %v", err)
	}

	if math.Abs(l.NSupply.Reallocation-0.16) > 1e-9 {
		t.Errorf("reallocation = %f, want 4 x 0.1 x 0.4 = 0.16", l.NSupply.Reallocation)
	}
	if math.Abs(l.NSupply.Retranslocation-1.08) > 1e-9 {
		t.Errorf("retranslocation = %f, want 4 x 0.9 x 0.3 = 1.08", l.NSupply.Retranslocation)
	}
}

func TestLeaf_NSupplyIgnoresStructuralN(t *testing.T) {
	l, _ := newTestLeaf(t)
	l.Live.StructuralN = 50

	if err := l.SetNSupply(); err != nil {
		t.Fatalf("SetNSupply: %v", err)
	}
	if l.NSupply.Total() != 0 {
		t.Errorf("total = %f, structural N must not be labile", l.NSupply.Total())
	}
}

func TestLeaf_NSupplyNegativeFactorFails(t *testing.T) {
	l, _ := newTestLeaf(t)
	l.Live.StorageN = 1
	l.providers.NRetranslocationFactor = constValue(-0.1)

	if err := l.SetNSupply(); err == nil {
		t.Error("expected error from negative retranslocation factor")
	}
}

func TestLeaf_Demands(t *testing.T) {
	l, _ := newTestLeaf(t)

	if err := l.SetDMDemand(); err != nil {
		t.Fatalf("SetDMDemand: %v", err)
	}
	if err := l.SetNDemand(); err != nil {
		t.Fatalf("SetNDemand: %v", err)
	}

	if math.Abs(l.DMDemand.Total()-3.5) > 1e-9 {
		t.Errorf("DM demand total = %f, want 2.0+0.5+1.0 = 3.5", l.DMDemand.Total())
	}
	if math.Abs(l.NDemand.Total()-0.35) > 1e-9 {
		t.Errorf("N demand total = %f, want 0.2+0.05+0.1 = 0.35", l.NDemand.Total())
	}
}

func TestLeaf_StorageDemandFlooredAtZero(t *testing.T) {
	l, _ := newTestLeaf(t)
	l.providers.StorageDMDemand = constValue(-4)
	l.providers.StorageNDemand = constValue(-1)

	if err := l.SetDMDemand(); err != nil {
		t.Fatalf("SetDMDemand: %v", err)
	}
	if err := l.SetNDemand(); err != nil {
		t.Fatalf("SetNDemand: %v", err)
	}

	if l.DMDemand.Storage != 0 {
		t.Errorf("storage DM demand = %f, want floored 0", l.DMDemand.Storage)
	}
	if l.NDemand.Storage != 0 {
		t.Errorf("storage N demand = %f, want floored 0", l.NDemand.Storage)
	}
}
