package cascade

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// CrossSectionUnit selects the unit of returned cross-section curves.
type CrossSectionUnit int

const (
	// UnitMbarn returns curves as tabulated, in millibarn.
	UnitMbarn CrossSectionUnit = iota
	// UnitCm2 returns curves converted to cm^2.
	UnitCm2
)

// Unit conversion derived from hbar*c. The chain mirrors the natural-unit
// bookkeeping of the tables: GeV*fm -> GeV*cm -> GeV^2*mbarn -> cm^2 per
// mbarn. Kept as a derivation rather than a rounded literal so the full
// float64 precision of hbar*c carries through.
const (
	hbarcGeVfm = 0.19732696312541853 // hbar*c in GeV*fm
	hbarcGeVcm = hbarcGeVfm * 1e-13
	gev2Mbarn  = 10.0 * hbarcGeVfm * hbarcGeVfm

	// MbarnToCm2 converts tabulated mbarn values to cm^2.
	MbarnToCm2 = hbarcGeVcm * hbarcGeVcm / gev2Mbarn
)

// crossSectionFamilies are the documented model-name equivalence classes:
// any requested name starting with a family prefix resolves to that
// family's canonical table key. SIBYLL2.2 resolves to the 2.3 tables,
// which superseded it.
var crossSectionFamilies = []struct {
	prefix    string
	canonical string
}{
	{"SIBYLL2.3", "SIBYLL2.3"},
	{"SIBYLL2.2", "SIBYLL2.3"},
}

// CrossSectionTable holds, per interaction model, the inelastic
// projectile-air cross-section curves over the energy grid and resolves
// untabulated projectiles through a fixed substitution policy.
type CrossSectionTable struct {
	src    *CrossSectionSource
	grid   []float64
	model  string
	curves map[int][]float64
}

// NewCrossSectionTable builds a table over src and selects model.
func NewCrossSectionTable(src *CrossSectionSource, model string) (*CrossSectionTable, error) {
	t := &CrossSectionTable{src: src, grid: src.Centers}
	if err := t.SelectModel(model); err != nil {
		return nil, err
	}
	return t, nil
}

// Model returns the canonical name of the active model.
func (t *CrossSectionTable) Model() string { return t.model }

// Dim returns the number of energy bins per curve.
func (t *CrossSectionTable) Dim() int { return len(t.grid) }

// SelectModel activates the cross-section set for the named interaction
// model. Exact table keys win; otherwise the name is resolved through the
// documented family prefixes. Re-selecting the active model is a no-op.
func (t *CrossSectionTable) SelectModel(name string) error {
	resolved, err := t.resolve(name)
	if err != nil {
		return err
	}
	if resolved == t.model {
		logrus.Debugf("cross-sections: model %s already loaded", t.model)
		return nil
	}
	t.model = resolved
	t.curves = t.src.Models[resolved]
	logrus.Infof("cross-sections: selected model %s (requested %q), %d projectiles",
		resolved, name, len(t.curves))
	return nil
}

func (t *CrossSectionTable) resolve(name string) (string, error) {
	if _, ok := t.src.Models[name]; ok {
		return name, nil
	}
	for _, fam := range crossSectionFamilies {
		if strings.HasPrefix(name, fam.prefix) {
			if _, ok := t.src.Models[fam.canonical]; ok {
				return fam.canonical, nil
			}
		}
	}
	avail := make([]string, 0, len(t.src.Models))
	for k := range t.src.Models {
		avail = append(avail, k)
	}
	return "", &ModelNotFoundError{Name: name, Available: avail}
}

// CrossSection returns the inelastic projectile-air cross-section curve
// for id over the energy grid. Untabulated identifiers resolve through the
// substitution policy, in order: charmed mesons and tau take the charged
// kaon curve, charmed baryons and the generic baryon band take the proton
// curve, leptons and scoring aliases take an all-zero curve, everything
// else takes the charged pion curve. The policy never fails; it only
// substitutes.
func (t *CrossSectionTable) CrossSection(id int, unit CrossSectionUnit) *mat.VecDense {
	scale := 1.0
	if unit == UnitCm2 {
		scale = MbarnToCm2
	}

	if curve, ok := t.curves[abs(id)]; ok {
		return scaledVec(curve, scale)
	}

	switch {
	case IsCharmedMesonLike(id):
		logrus.Debugf("cross-sections: replacing %d with K+- cross-section", id)
		return t.substitute(PDGKCharged, scale)
	case IsCharmedBaryon(id):
		logrus.Debugf("cross-sections: replacing charmed baryon %d with nucleon cross-section", id)
		return t.substitute(PDGProton, scale)
	case InBaryonBand(id):
		logrus.Debugf("cross-sections: replacing %d with nucleon cross-section", id)
		return t.substitute(PDGProton, scale)
	case InLeptonBand(id) || InAliasBand(id):
		logrus.Debugf("cross-sections: zero cross-section for lepton %d", id)
		return mat.NewVecDense(t.Dim(), nil)
	default:
		logrus.Debugf("cross-sections: replacing %d with pion cross-section", id)
		return t.substitute(PDGPiCharged, scale)
	}
}

// substitute returns the curve of a policy substitute. The substitutes
// (pion, kaon, proton) are part of every tabulated model; a missing one
// indicates a truncated table and degrades to zero with a warning rather
// than failing a lookup the policy promises to resolve.
func (t *CrossSectionTable) substitute(id int, scale float64) *mat.VecDense {
	curve, ok := t.curves[id]
	if !ok {
		logrus.Warnf("cross-sections: substitute %d missing from model %s, returning zero curve", id, t.model)
		return mat.NewVecDense(t.Dim(), nil)
	}
	return scaledVec(curve, scale)
}

func scaledVec(curve []float64, scale float64) *mat.VecDense {
	v := mat.NewVecDense(len(curve), append([]float64(nil), curve...))
	if scale != 1.0 {
		v.ScaleVec(scale, v)
	}
	return v
}
