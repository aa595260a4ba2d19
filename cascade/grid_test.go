package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnergyGrid_Valid(t *testing.T) {
	g, err := NewEnergyGrid(testCenters, testEdges)
	require.NoError(t, err)

	assert.Equal(t, 4, g.Dim())
	assert.Equal(t, testCenters, g.Centers())
	assert.Equal(t, testEdges, g.Edges())

	// widths are the edge differences on the diagonal
	want := []float64{1, 2, 4, 8}
	for i, w := range want {
		if got := g.Width(i); got != w {
			t.Errorf("Width(%d) = %g, want %g", i, got, w)
		}
		if got := g.Widths().At(i, i); got != w {
			t.Errorf("Widths().At(%d,%d) = %g, want %g", i, i, got, w)
		}
	}
}

func TestNewEnergyGrid_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		centers []float64
		edges   []float64
	}{
		{"empty", nil, []float64{1}},
		{"edge count mismatch", []float64{1.5, 3}, []float64{1, 2}},
		{"non-increasing edges", []float64{1.5, 3}, []float64{1, 4, 2}},
		{"center outside bin", []float64{5, 3}, []float64{1, 2, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEnergyGrid(tc.centers, tc.edges)
			assert.Error(t, err)
		})
	}
}

func TestEnergyGrid_Immutable(t *testing.T) {
	centers := []float64{1.5, 3, 6, 12}
	edges := []float64{1, 2, 4, 8, 16}
	g, err := NewEnergyGrid(centers, edges)
	require.NoError(t, err)

	// mutating the inputs must not affect the grid
	centers[0] = -1
	edges[0] = -1
	assert.Equal(t, 1.5, g.Centers()[0])
	assert.Equal(t, 1.0, g.Edges()[0])
}
