package cascade

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// DecayYields manages the dictionary of decay yield matrices and the
// derived mother -> daughters index. Decay data is not interaction-model
// dependent; there is no model selection.
type DecayYields struct {
	grid      *EnergyGrid
	records   map[Pair]*mat.Dense
	mothers   []int
	daughters map[int][]int
}

// NewDecayYields builds the table over src on the shared energy grid and
// derives the index. The muon scoring aliases inherit the canonical muon's
// decay channels by reference, per charge sign; an alias carrying its own
// tabulated channels is corrupt source data and fails with a
// DuplicateRegistrationError.
func NewDecayYields(src *DecaySource, grid *EnergyGrid) (*DecayYields, error) {
	records := make(map[Pair]*mat.Dense, len(src.Records))
	for k, v := range src.Records {
		records[k] = v
	}
	mothers, daughters, err := buildYieldIndex(grid, records, nil)
	if err != nil {
		return nil, err
	}

	t := &DecayYields{grid: grid, records: records, mothers: mothers, daughters: daughters}
	for _, alias := range muonScoringAliases {
		if err := t.inheritMuonChannels(alias, PDGMuon); err != nil {
			return nil, err
		}
		if err := t.inheritMuonChannels(-alias, -PDGMuon); err != nil {
			return nil, err
		}
	}
	t.mothers = sortedKeys(t.daughters)
	return t, nil
}

// inheritMuonChannels makes alias decay identically to canonical: the
// daughter list is shared by reference and every channel matrix is the
// canonical one, so the alias stays addressable as a distinct state-vector
// slot without duplicating physics data.
func (t *DecayYields) inheritMuonChannels(alias, canonical int) error {
	if existing := t.daughters[alias]; len(existing) > 0 {
		return &DuplicateRegistrationError{Source: alias, Product: existing[0]}
	}
	t.daughters[alias] = t.daughters[canonical]
	for _, d := range t.daughters[canonical] {
		t.records[Pair{Src: alias, Prod: d}] = t.records[Pair{Src: canonical, Prod: d}]
	}
	return nil
}

// Grid returns the energy grid shared by all records.
func (t *DecayYields) Grid() *EnergyGrid { return t.grid }

// Mothers returns every decaying particle of the table in ascending
// identifier order. Callers must not modify the returned slice.
func (t *DecayYields) Mothers() []int { return t.mothers }

// Daughters returns the decay daughters of mother, in ascending identifier
// order. Stable or unknown mothers return an empty sequence, not an error.
// Callers must not modify the returned slice.
func (t *DecayYields) Daughters(mother int) []int {
	ds, ok := t.daughters[mother]
	if !ok {
		logrus.Debugf("decay yields: daughter list requested for stable or unknown mother %d", mother)
		return nil
	}
	return ds
}

// HasDecay reports whether daughter is a decay daughter of mother. Never
// fails.
func (t *DecayYields) HasDecay(mother, daughter int) bool {
	for _, d := range t.daughters[mother] {
		if d == daughter {
			return true
		}
	}
	return false
}

// DecayMatrix returns the d x d decay matrix for the channel,
// right-multiplied by the bin-width diagonal. The stored records keep the
// mother's energy bins on rows and are transposed on access so the
// returned matrix follows the interaction convention (daughter bins on
// rows). Returns a NoDecayError when HasDecay is false.
func (t *DecayYields) DecayMatrix(mother, daughter int) (*mat.Dense, error) {
	if !t.HasDecay(mother, daughter) {
		return nil, &NoDecayError{Mother: mother, Daughter: daughter}
	}
	d := t.grid.Dim()
	out := mat.NewDense(d, d, nil)
	out.Mul(t.records[Pair{Src: mother, Prod: daughter}].T(), t.grid.Widths())
	return out, nil
}

// AssignSubmatrix copies the [dtrRange x moRange] block of the decay
// matrix for (mother, daughter) into the same block of target, which must
// be d x d. Empty ranges copy nothing.
func (t *DecayYields) AssignSubmatrix(mother int, moRange Range, daughter int, dtrRange Range, target *mat.Dense) error {
	if !t.grid.sameShape(target) {
		r, c := target.Dims()
		return fmt.Errorf("assign submatrix: %dx%d target on a %d-bin grid", r, c, t.grid.Dim())
	}
	full, err := t.DecayMatrix(mother, daughter)
	if err != nil {
		return err
	}
	copyBlock(target, full, dtrRange, moRange)
	return nil
}

func sortedKeys(m map[int][]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
