package sim

// ResidueAddition records one biomass handoff to the surface residue pool.
type ResidueAddition struct {
	Mass             float64
	N                float64
	FractionStanding float64
	CropType         string
	OrganName        string
}

// Residue is the surface organic matter collaborator. Each plant forwards
// its final live plus dead biomass here exactly once, at ending.
type Residue struct {
	Mass      float64
	N         float64
	Additions []ResidueAddition
}

// NewResidue creates an empty residue pool.
func NewResidue() *Residue {
	return &Residue{}
}

// Add receives an organ's remaining biomass.
func (r *Residue) Add(mass, n, fractionStanding float64, cropType, organName string) {
	r.Mass += mass
	r.N += n
	r.Additions = append(r.Additions, ResidueAddition{
		Mass:             mass,
		N:                n,
		FractionStanding: fractionStanding,
		CropType:         cropType,
		OrganName:        organName,
	})
}
