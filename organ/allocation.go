package organ

import "math"

// DMAllocation is an arbitrated dry matter allocation for one timestep.
// Retranslocation is dry matter drawn back out of storage.
type DMAllocation struct {
	Structural      float64
	Metabolic       float64
	Storage         float64
	Retranslocation float64
}

// NAllocation is an arbitrated nitrogen allocation for one timestep.
// Retranslocation and Reallocation are draws against the supplies computed
// earlier the same day.
type NAllocation struct {
	Structural      float64
	Metabolic       float64
	Storage         float64
	Retranslocation float64
	Reallocation    float64
}

// SetDryMatterPotentialAllocation records the arbitrator's potential
// (pre-stress) dry matter allocation for the day.
func (l *Leaf) SetDryMatterPotentialAllocation(p DMAllocation) error {
	if !l.active() {
		return nil
	}
	l.potentialDM = p
	return nil
}

// SetDryMatterAllocation applies the arbitrated dry matter allocation to
// the live pool, enforcing conservation against the start-of-day state.
func (l *Leaf) SetDryMatterAllocation(a DMAllocation) error {
	if !l.active() {
		return nil
	}

	if a.Retranslocation > l.startLive.StorageWt+Tolerance {
		return &ConservationError{
			Organ:    l.Name,
			Quantity: "DM retranslocation (exceeds non-structural biomass)",
			Value:    a.Retranslocation - l.startLive.StorageWt,
		}
	}
	if excess := a.Storage - l.DMDemand.Storage; excess > Tolerance {
		return &CapacityError{Organ: l.Name, Quantity: "storage DM", Excess: excess}
	}

	structural := math.Min(a.Structural, l.DMDemand.Structural)
	l.Live.StructuralWt += structural
	l.Allocated.StructuralWt += structural

	l.Live.MetabolicWt += a.Metabolic
	l.Allocated.MetabolicWt += a.Metabolic

	l.Live.StorageWt = clampPool(l.Live.StorageWt + a.Storage - a.Retranslocation)
	l.Allocated.StorageWt += a.Storage

	l.dmAllocated = a
	l.dmAllocated.Structural = structural
	return nil
}

// SetNitrogenAllocation applies the arbitrated nitrogen allocation. Three
// transactions are applied independently: direct addition, retranslocation,
// and reallocation. The draws subtract from storage N first and metabolic N
// second, each bounded by the supply computed earlier in the day.
func (l *Leaf) SetNitrogenAllocation(n NAllocation) error {
	if !l.active() {
		return nil
	}

	l.Live.StructuralN += n.Structural
	l.Live.StorageN += n.Storage
	l.Live.MetabolicN += n.Metabolic
	l.Allocated.StructuralN += n.Structural
	l.Allocated.StorageN += n.Storage
	l.Allocated.MetabolicN += n.Metabolic

	if err := l.drawLabileN(n.Retranslocation, l.NSupply.Retranslocation, "N retranslocation"); err != nil {
		return err
	}
	if err := l.drawLabileN(n.Reallocation, l.NSupply.Reallocation, "N reallocation"); err != nil {
		return err
	}
	return nil
}

// drawLabileN removes amount from storage N then metabolic N, verifying the
// draw stays within the quoted supply and the labile pools.
func (l *Leaf) drawLabileN(amount, supply float64, quantity string) error {
	if amount == 0 {
		return nil
	}
	if amount < 0 {
		return &ConservationError{Organ: l.Name, Quantity: quantity, Value: amount}
	}
	if amount > supply+Tolerance {
		return &ConservationError{
			Organ:    l.Name,
			Quantity: quantity + " (exceeds supply)",
			Value:    amount - supply,
		}
	}

	fromStorage := math.Min(amount, l.Live.StorageN)
	remainder := amount - fromStorage
	if remainder > l.Live.MetabolicN+Tolerance {
		return &ConservationError{
			Organ:    l.Name,
			Quantity: quantity + " (exceeds labile N)",
			Value:    remainder - l.Live.MetabolicN,
		}
	}

	l.Live.StorageN = clampPool(l.Live.StorageN - fromStorage)
	l.Live.MetabolicN = clampPool(l.Live.MetabolicN - remainder)
	return nil
}
