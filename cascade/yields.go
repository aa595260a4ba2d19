package cascade

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Supported submodel injections. The set is closed: anything else is an
// UnsupportedSubmodelError.
const (
	// SubmodelMRS replaces charm yields with matrices computed by a
	// caller-supplied SubmodelYielder (the MRS charm parameterization).
	SubmodelMRS = "MRS"

	// SubmodelSibyllPL replaces charm yields with the perturbative-charm
	// SIBYLL table, rescaled from the proton target it was sampled on to
	// the air target of the base table.
	SubmodelSibyllPL = "SIBYLL23_PL"
)

// Table keys consumed by SubmodelSibyllPL.
const (
	sibyllPLSourceModel = "SIBYLL2.3_rc1_pl"
	sibyllPLAirModel    = "SIBYLL2.3"
	sibyllPLProtonModel = "SIBYLL2.3_pp"
)

// InteractionYields manages the dictionary of interaction yield matrices
// for the active interaction model, plus the derived projectile index.
// The index must not be queried before a model is selected; the
// constructor always selects one.
type InteractionYields struct {
	grid *EnergyGrid
	src  *YieldSource
	cs   *CrossSectionSource // needed only for SubmodelSibyllPL rescaling

	model    string
	submodel string // "" when the base table is active

	records     map[Pair]*mat.Dense
	projectiles []int
	secondaries map[int][]int
}

// NewInteractionYields builds the table over src and selects model. cs may
// be nil if SubmodelSibyllPL injection is never used.
func NewInteractionYields(src *YieldSource, cs *CrossSectionSource, model string) (*InteractionYields, error) {
	grid, err := NewEnergyGrid(src.Centers, src.Edges)
	if err != nil {
		return nil, fmt.Errorf("interaction yields: %w", err)
	}
	t := &InteractionYields{grid: grid, src: src, cs: cs}
	if err := t.SelectModel(model, false); err != nil {
		return nil, err
	}
	return t, nil
}

// Grid returns the energy grid shared by all records.
func (t *InteractionYields) Grid() *EnergyGrid { return t.grid }

// Model returns the active interaction model name.
func (t *InteractionYields) Model() string { return t.model }

// Submodel returns the active injected submodel name, or "" for the base
// table.
func (t *InteractionYields) Submodel() string { return t.submodel }

// SelectModel activates the record set of the named interaction model and
// rebuilds the index. Re-selecting the active model is a logged no-op
// unless force is set; force reload also discards any injected submodel.
func (t *InteractionYields) SelectModel(name string, force bool) error {
	if !force && name == t.model {
		logrus.Debugf("interaction yields: model %s already loaded", t.model)
		return nil
	}
	records, ok := t.src.Models[name]
	if !ok {
		avail := make([]string, 0, len(t.src.Models))
		for k := range t.src.Models {
			avail = append(avail, k)
		}
		return &ModelNotFoundError{Name: name, Available: avail}
	}
	projs, secs, err := buildYieldIndex(t.grid, records, excludeElectromagnetic)
	if err != nil {
		return err
	}
	t.records = records
	t.projectiles = projs
	t.secondaries = secs
	t.model = name
	t.submodel = ""
	logrus.Infof("interaction yields: selected model %s, %d projectiles", name, len(projs))
	return nil
}

// excludeElectromagnetic drops electrons and photons from the interaction
// index: their transport is handled outside the hadronic cascade.
func excludeElectromagnetic(prod int) bool {
	a := abs(prod)
	return a == PDGElectron || a == PDGPhoton
}

// buildYieldIndex derives the source -> products index over a record set.
// Every source appearing in the record set gets an entry, even when all of
// its records are trivial; a record is indexed only when its matrix has a
// non-zero sum. Registering the same product twice for one source is a
// hard error: it means physics data was silently overwritten upstream.
func buildYieldIndex(grid *EnergyGrid, records map[Pair]*mat.Dense, exclude func(int) bool) ([]int, map[int][]int, error) {
	secs := make(map[int][]int)
	keys := make([]Pair, 0, len(records))
	for key := range records {
		if _, ok := secs[key.Src]; !ok {
			secs[key.Src] = nil
		}
		keys = append(keys, key)
	}
	// deterministic index order independent of map iteration
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Src != keys[j].Src {
			return keys[i].Src < keys[j].Src
		}
		return keys[i].Prod < keys[j].Prod
	})

	for _, key := range keys {
		m := records[key]
		if !grid.sameShape(m) {
			r, c := m.Dims()
			return nil, nil, fmt.Errorf("yield record %d -> %d: %dx%d matrix on a %d-bin grid",
				key.Src, key.Prod, r, c, grid.Dim())
		}
		if exclude != nil && exclude(key.Prod) {
			continue
		}
		if mat.Sum(m) <= 0 {
			continue
		}
		for _, registered := range secs[key.Src] {
			if registered == key.Prod {
				return nil, nil, &DuplicateRegistrationError{Source: key.Src, Product: key.Prod}
			}
		}
		secs[key.Src] = append(secs[key.Src], key.Prod)
	}

	projs := make([]int, 0, len(secs))
	for p := range secs {
		projs = append(projs, p)
	}
	sort.Ints(projs)
	return projs, secs, nil
}

// Projectiles returns every source particle of the active record set in
// ascending identifier order. Callers must not modify the returned slice.
func (t *InteractionYields) Projectiles() []int { return t.projectiles }

// Secondaries returns the products with a non-trivial yield record for
// projectile, in ascending identifier order. Empty for unknown
// projectiles. Callers must not modify the returned slice.
func (t *InteractionYields) Secondaries(projectile int) []int {
	return t.secondaries[projectile]
}

// HasYield reports whether a non-zero yield matrix exists for the
// projectile-secondary combination. Never fails.
func (t *InteractionYields) HasYield(projectile, secondary int) bool {
	for _, s := range t.secondaries[projectile] {
		if s == secondary {
			return true
		}
	}
	return false
}

// YieldMatrix returns the d x d yield matrix for the combination,
// right-multiplied by the bin-width diagonal so entries are integrated
// yields per bin. Returns a NoYieldError when HasYield is false; callers
// expecting possible absence must check HasYield first.
func (t *InteractionYields) YieldMatrix(projectile, secondary int) (*mat.Dense, error) {
	if !t.HasYield(projectile, secondary) {
		return nil, &NoYieldError{Model: t.model, Projectile: projectile, Secondary: secondary}
	}
	d := t.grid.Dim()
	out := mat.NewDense(d, d, nil)
	out.Mul(t.records[Pair{Src: projectile, Prod: secondary}], t.grid.Widths())
	return out, nil
}

// AssignSubmatrix copies the [secRange x projRange] block of the yield
// matrix for (projectile, secondary) into the same block of target, which
// must be d x d. Rows address the secondary's energy bins and columns the
// projectile's. Empty ranges copy nothing.
func (t *InteractionYields) AssignSubmatrix(projectile int, projRange Range, secondary int, secRange Range, target *mat.Dense) error {
	if !t.grid.sameShape(target) {
		r, c := target.Dims()
		return fmt.Errorf("assign submatrix: %dx%d target on a %d-bin grid", r, c, t.grid.Dim())
	}
	full, err := t.YieldMatrix(projectile, secondary)
	if err != nil {
		return err
	}
	copyBlock(target, full, secRange, projRange)
	return nil
}

// copyBlock copies src's [rows x cols] block into the same block of dst.
func copyBlock(dst, src *mat.Dense, rows, cols Range) {
	if rows.Empty() || cols.Empty() {
		return
	}
	view := dst.Slice(rows.Lo, rows.Hi, cols.Lo, cols.Hi).(*mat.Dense)
	view.Copy(src.Slice(rows.Lo, rows.Hi, cols.Lo, cols.Hi))
}

// InjectSubmodel replaces the charm production records of the active model
// with matrices from an alternate physics model and re-derives the index.
// The base record set is never mutated: overrides go into a fresh shallow
// copy published only after the new index builds cleanly, so readers
// holding the pre-injection table are unaffected. Injecting while a
// different submodel is active first restores the base table; injection
// does not stack. alt is consumed only by SubmodelMRS.
func (t *InteractionYields) InjectSubmodel(name string, alt SubmodelYielder) error {
	switch name {
	case SubmodelMRS, SubmodelSibyllPL:
	default:
		return &UnsupportedSubmodelError{Name: name}
	}

	if t.submodel != "" && t.submodel != name {
		logrus.Infof("interaction yields: restoring base model %s before injecting %s", t.model, name)
		if err := t.SelectModel(t.model, true); err != nil {
			return err
		}
	}

	next := make(map[Pair]*mat.Dense, len(t.records))
	for k, v := range t.records {
		next[k] = v
	}
	charm := CharmedProducts()

	switch name {
	case SubmodelMRS:
		if alt == nil {
			return fmt.Errorf("submodel %s requires a yielder", name)
		}
		for _, proj := range t.projectiles {
			for _, ch := range charm {
				m, err := alt.YieldMatrix(proj, ch)
				if err != nil {
					return fmt.Errorf("submodel %s yield %d -> %d: %w", name, proj, ch, err)
				}
				next[Pair{Src: proj, Prod: ch}] = m
			}
		}

	case SubmodelSibyllPL:
		base, ok := t.src.Models[sibyllPLSourceModel]
		if !ok {
			avail := make([]string, 0, len(t.src.Models))
			for k := range t.src.Models {
				avail = append(avail, k)
			}
			return &ModelNotFoundError{Name: sibyllPLSourceModel, Available: avail}
		}
		if t.cs == nil {
			return fmt.Errorf("submodel %s requires a cross-section source for target rescaling", name)
		}
		csAir, err := NewCrossSectionTable(t.cs, sibyllPLAirModel)
		if err != nil {
			return fmt.Errorf("submodel %s: %w", name, err)
		}
		csProton, err := NewCrossSectionTable(t.cs, sibyllPLProtonModel)
		if err != nil {
			return fmt.Errorf("submodel %s: %w", name, err)
		}
		d := t.grid.Dim()
		for _, proj := range t.projectiles {
			// Rescale with sigma_pp/sigma_air per projectile energy bin so
			// the later coupling step sees the proton-target normalization,
			// then scale to the air target nucleon count.
			scale := targetRatioDiag(csProton, csAir, proj, d)
			for _, ch := range charm {
				rec, ok := base[Pair{Src: proj, Prod: ch}]
				if !ok {
					continue
				}
				m := mat.NewDense(d, d, nil)
				m.Mul(rec, scale)
				m.Scale(airMeanA, m)
				next[Pair{Src: proj, Prod: ch}] = m
			}
		}
	}

	projs, secs, err := buildYieldIndex(t.grid, next, excludeElectromagnetic)
	if err != nil {
		return err
	}
	t.records = next
	t.projectiles = projs
	t.secondaries = secs
	t.submodel = name
	logrus.Infof("interaction yields: injected submodel %s over %s", name, t.model)
	return nil
}

// targetRatioDiag builds the diagonal sigma_num/sigma_den rescale for one
// projectile over the grid. Bins where the denominator vanishes rescale to
// zero rather than dividing by zero.
func targetRatioDiag(num, den *CrossSectionTable, projectile, d int) *mat.DiagDense {
	n := num.CrossSection(projectile, UnitMbarn)
	dn := den.CrossSection(projectile, UnitMbarn)
	data := make([]float64, d)
	for i := 0; i < d; i++ {
		if v := dn.AtVec(i); v != 0 {
			data[i] = n.AtVec(i) / v
		}
	}
	return mat.NewDiagDense(d, data)
}
