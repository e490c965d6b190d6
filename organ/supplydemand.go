package organ

// BiomassSupply holds the day's supply terms, recomputed fresh each day.
type BiomassSupply struct {
	Reallocation    float64
	Retranslocation float64
	Fixation        float64
	Uptake          float64
}

// Total returns the sum of all supply terms.
func (s *BiomassSupply) Total() float64 {
	return s.Reallocation + s.Retranslocation + s.Fixation + s.Uptake
}

// BiomassDemand holds the day's demand terms, recomputed fresh each day.
type BiomassDemand struct {
	Structural float64
	Metabolic  float64
	Storage    float64
}

// Total returns the sum of all demand terms.
func (d *BiomassDemand) Total() float64 {
	return d.Structural + d.Metabolic + d.Storage
}

// computeDMSupply derives dry matter supply from the live pool and the
// injected rate providers. A negative pre-clamp value means a misconfigured
// provider and is fatal for the timestep.
func (l *Leaf) computeDMSupply() (BiomassSupply, error) {
	senescenceRate := l.providers.SenescenceRate.Value()

	reallocation := l.Live.StorageWt * senescenceRate * l.providers.DMReallocationFactor.Value()
	if reallocation < 0 {
		return BiomassSupply{}, &ConservationError{Organ: l.Name, Quantity: "DM reallocation", Value: reallocation}
	}

	available := l.Live.StorageWt - reallocation
	if available < 0 {
		available = 0
	}
	retranslocation := available * l.providers.DMRetranslocationFactor.Value()
	if retranslocation < 0 {
		return BiomassSupply{}, &ConservationError{Organ: l.Name, Quantity: "DM retranslocation", Value: retranslocation}
	}

	return BiomassSupply{
		Reallocation:    reallocation,
		Retranslocation: retranslocation,
	}, nil
}

// computeNSupply derives nitrogen supply from the live pool's labile N.
func (l *Leaf) computeNSupply() (BiomassSupply, error) {
	senescenceRate := l.providers.SenescenceRate.Value()
	labileN := l.Live.StorageN + l.Live.MetabolicN

	reallocation := labileN * senescenceRate * l.providers.NReallocationFactor.Value()
	if reallocation < 0 {
		return BiomassSupply{}, &ConservationError{Organ: l.Name, Quantity: "N reallocation", Value: reallocation}
	}

	retranslocation := labileN * (1 - senescenceRate) * l.providers.NRetranslocationFactor.Value()
	if retranslocation < 0 {
		return BiomassSupply{}, &ConservationError{Organ: l.Name, Quantity: "N retranslocation", Value: retranslocation}
	}

	return BiomassSupply{
		Reallocation:    reallocation,
		Retranslocation: retranslocation,
	}, nil
}

// computeDMDemand reads the injected demand functions. Storage demand is
// floored at zero; the others are taken as provided.
func (l *Leaf) computeDMDemand() BiomassDemand {
	storage := l.providers.StorageDMDemand.Value()
	if storage < 0 {
		storage = 0
	}
	return BiomassDemand{
		Structural: l.providers.StructuralDMDemand.Value(),
		Metabolic:  l.providers.MetabolicDMDemand.Value(),
		Storage:    storage,
	}
}

// computeNDemand reads the injected nitrogen demand functions.
func (l *Leaf) computeNDemand() BiomassDemand {
	storage := l.providers.StorageNDemand.Value()
	if storage < 0 {
		storage = 0
	}
	return BiomassDemand{
		Structural: l.providers.StructuralNDemand.Value(),
		Metabolic:  l.providers.MetabolicNDemand.Value(),
		Storage:    storage,
	}
}
