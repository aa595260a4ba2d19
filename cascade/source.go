package cascade

import (
	"gonum.org/v1/gonum/mat"
)

// Pair keys a production channel: Src produces Prod. For interactions Src
// is the projectile and Prod the secondary; for decays Src is the mother
// and Prod the daughter.
type Pair struct {
	Src  int
	Prod int
}

// YieldSource is the already-deserialized interaction yield data handed in
// by a loader. Matrices are differential yields on the grid: column = the
// projectile's energy bin, row = the secondary's energy bin, not yet
// multiplied by bin widths.
type YieldSource struct {
	Centers []float64
	Edges   []float64
	Models  map[string]map[Pair]*mat.Dense
}

// DecaySource is the already-deserialized decay yield data. Matrices are
// stored transposed relative to the interaction convention (row = mother
// bin, column = daughter bin) and are transposed back on access.
type DecaySource struct {
	Records map[Pair]*mat.Dense
}

// CrossSectionSource is the already-deserialized inelastic cross-section
// data: per interaction model, a curve over the grid for each tabulated
// projectile, in mbarn.
type CrossSectionSource struct {
	Centers []float64
	Models  map[string]map[int][]float64
}

// ParticleProperties supplies per-identifier particle metadata. Mass and
// CTau return an error when the identifier has no tabulated data; the
// regime classifier maps that failure to an infinite decay length rather
// than propagating it.
type ParticleProperties interface {
	// Name returns a display name for the identifier.
	Name(id int) string

	// Mass returns the particle mass in GeV.
	Mass(id int) (float64, error)

	// CTau returns the proper lifetime times c, in cm.
	CTau(id int) (float64, error)

	// IsMeson reports whether the identifier is a meson.
	IsMeson(id int) bool

	// IsBaryon reports whether the identifier is a baryon.
	IsBaryon(id int) bool
}

// SubmodelYielder computes replacement charm yield matrices from an
// alternate physics model. Implementations live outside this package; the
// matrices must follow the interaction convention (secondary bin rows,
// projectile bin columns, differential in the secondary energy).
type SubmodelYielder interface {
	YieldMatrix(projectile, secondary int) (*mat.Dense, error)
}
