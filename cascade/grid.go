package cascade

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// EnergyGrid is the common energy discretization shared by all tables:
// d bin-center energies (GeV, ascending) bracketed by d+1 bin edges.
// Immutable after construction.
type EnergyGrid struct {
	centers []float64
	edges   []float64
	widths  *mat.DiagDense
}

// NewEnergyGrid validates and builds an energy grid from bin centers and
// edges. Edges must be strictly increasing and every center must lie inside
// its bin.
func NewEnergyGrid(centers, edges []float64) (*EnergyGrid, error) {
	d := len(centers)
	if d == 0 {
		return nil, fmt.Errorf("energy grid: no bin centers")
	}
	if len(edges) != d+1 {
		return nil, fmt.Errorf("energy grid: %d centers require %d edges, got %d", d, d+1, len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("energy grid: edges not strictly increasing at index %d (%g <= %g)", i, edges[i], edges[i-1])
		}
	}
	diag := make([]float64, d)
	for i, e := range centers {
		if e < edges[i] || e > edges[i+1] {
			return nil, fmt.Errorf("energy grid: center %g outside bin [%g, %g]", e, edges[i], edges[i+1])
		}
		diag[i] = edges[i+1] - edges[i]
	}
	g := &EnergyGrid{
		centers: append([]float64(nil), centers...),
		edges:   append([]float64(nil), edges...),
		widths:  mat.NewDiagDense(d, diag),
	}
	return g, nil
}

// Dim returns the number of energy bins.
func (g *EnergyGrid) Dim() int { return len(g.centers) }

// Centers returns the bin-center energies in GeV. Callers must not modify
// the returned slice.
func (g *EnergyGrid) Centers() []float64 { return g.centers }

// Edges returns the d+1 bin-edge energies in GeV. Callers must not modify
// the returned slice.
func (g *EnergyGrid) Edges() []float64 { return g.edges }

// Widths returns the diagonal matrix of bin widths used to convert
// differential yields into per-bin integrated yields.
func (g *EnergyGrid) Widths() *mat.DiagDense { return g.widths }

// Width returns the width of bin i.
func (g *EnergyGrid) Width(i int) float64 { return g.edges[i+1] - g.edges[i] }

// sameShape reports whether m is a d x d matrix on this grid.
func (g *EnergyGrid) sameShape(m mat.Matrix) bool {
	r, c := m.Dims()
	return r == g.Dim() && c == g.Dim()
}
