package cascade

import (
	"fmt"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// testEdges/testCenters define the 4-bin grid shared by most tests.
// Bin widths are 1, 2, 4, 8.
var (
	testEdges   = []float64{1, 2, 4, 8, 16}
	testCenters = []float64{1.5, 3, 6, 12}
)

func testGrid(t *testing.T) *EnergyGrid {
	t.Helper()
	g, err := NewEnergyGrid(testCenters, testEdges)
	if err != nil {
		t.Fatalf("test grid: %v", err)
	}
	return g
}

// constDense returns a d x d matrix filled with v.
func constDense(d int, v float64) *mat.Dense {
	data := make([]float64, d*d)
	for i := range data {
		data[i] = v
	}
	return mat.NewDense(d, d, data)
}

// constCurve returns a flat cross-section curve over the test grid.
func constCurve(v float64) []float64 {
	return []float64{v, v, v, v}
}

// testYieldSource builds a two-model yield source over the test grid.
// The base model includes an all-zero record, an electromagnetic
// secondary and a charm channel to exercise the index rules.
func testYieldSource() *YieldSource {
	d := len(testCenters)
	return &YieldSource{
		Centers: testCenters,
		Edges:   testEdges,
		Models: map[string]map[Pair]*mat.Dense{
			"SIBYLL2.3": {
				{Src: 2212, Prod: 211}:  constDense(d, 1),
				{Src: 2212, Prod: -211}: constDense(d, 0.5),
				{Src: 2212, Prod: 411}:  constDense(d, 0.1),
				{Src: 2212, Prod: 11}:   constDense(d, 1), // excluded: electromagnetic
				{Src: 2212, Prod: 321}:  constDense(d, 0), // excluded: all-zero
				{Src: 211, Prod: 211}:   constDense(d, 2),
			},
			"QGSJET-II": {
				{Src: 2212, Prod: 211}: constDense(d, 3),
			},
			"SIBYLL2.3_rc1_pl": {
				{Src: 2212, Prod: 411}:  constDense(d, 1),
				{Src: 2212, Prod: -411}: constDense(d, 1),
			},
		},
	}
}

// testCrossSectionSource tabulates pion, kaon and proton curves for the
// air model plus a proton-target model for injection rescaling.
func testCrossSectionSource() *CrossSectionSource {
	return &CrossSectionSource{
		Centers: testCenters,
		Models: map[string]map[int][]float64{
			"SIBYLL2.3": {
				PDGPiCharged: constCurve(200),
				PDGKCharged:  constCurve(150),
				PDGProton:    constCurve(300),
			},
			"SIBYLL2.3_pp": {
				PDGPiCharged: constCurve(20),
				PDGKCharged:  constCurve(15),
				PDGProton:    constCurve(30),
			},
		},
	}
}

// testDecaySource covers pion and muon decay plus the conjugate muon
// channels the scoring aliases inherit. Decay records are stored with
// mother bins on rows.
func testDecaySource() *DecaySource {
	d := len(testCenters)
	return &DecaySource{
		Records: map[Pair]*mat.Dense{
			{Src: 211, Prod: -13}: constDense(d, 1),
			{Src: 211, Prod: 14}:  constDense(d, 1),
			{Src: 13, Prod: 12}:   constDense(d, 0.5),
			{Src: 13, Prod: -14}:  constDense(d, 0.5),
			{Src: -13, Prod: -12}: constDense(d, 0.5),
			{Src: -13, Prod: 14}:  constDense(d, 0.5),
		},
	}
}

// fakeProps is an in-memory ParticleProperties for tests.
type fakeProps struct {
	names   map[int]string
	mass    map[int]float64
	ctau    map[int]float64
	mesons  map[int]bool
	baryons map[int]bool
}

func newFakeProps() *fakeProps {
	return &fakeProps{
		names:   map[int]string{},
		mass:    map[int]float64{},
		ctau:    map[int]float64{},
		mesons:  map[int]bool{},
		baryons: map[int]bool{},
	}
}

func (f *fakeProps) add(id int, name, class string, mass, ctau float64) *fakeProps {
	f.names[id] = name
	f.mass[id] = mass
	f.ctau[id] = ctau
	switch class {
	case "meson":
		f.mesons[id] = true
	case "baryon":
		f.baryons[id] = true
	}
	return f
}

func (f *fakeProps) Name(id int) string {
	if n, ok := f.names[abs(id)]; ok {
		return n
	}
	return fmt.Sprintf("PDG(%d)", id)
}

func (f *fakeProps) Mass(id int) (float64, error) {
	m, ok := f.mass[abs(id)]
	if !ok {
		return 0, fmt.Errorf("no mass data for %d", id)
	}
	return m, nil
}

func (f *fakeProps) CTau(id int) (float64, error) {
	c, ok := f.ctau[abs(id)]
	if !ok {
		return 0, fmt.Errorf("no lifetime data for %d", id)
	}
	return c, nil
}

func (f *fakeProps) IsMeson(id int) bool  { return f.mesons[abs(id)] }
func (f *fakeProps) IsBaryon(id int) bool { return f.baryons[abs(id)] }

// crossSectionForRatio returns the tabulated mbarn value that makes the
// decay/interaction length ratio equal c*E for a particle with unit mass
// and unit ctau: ratio(E) = rho * sigma * ctau * E / (m * m_air).
func crossSectionForRatio(c float64) float64 {
	return c * airNucleusMass / (surfaceAirDensity * MbarnToCm2)
}
