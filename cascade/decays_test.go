package cascade

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newTestDecays(t *testing.T) *DecayYields {
	t.Helper()
	d, err := NewDecayYields(testDecaySource(), testGrid(t))
	require.NoError(t, err)
	return d
}

func TestDecayYields_Index(t *testing.T) {
	dy := newTestDecays(t)

	assert.Equal(t, []int{-14, 12}, dy.Daughters(13))
	assert.Equal(t, []int{-12, 14}, dy.Daughters(-13))
	assert.Equal(t, []int{-13, 14}, dy.Daughters(211))
	assert.True(t, dy.HasDecay(211, 14))
	assert.False(t, dy.HasDecay(211, 12))

	// stable or unknown mothers return an empty sequence, not an error
	assert.Empty(t, dy.Daughters(2212))
	assert.Empty(t, dy.Daughters(99999))
}

func TestDecayYields_Matrix(t *testing.T) {
	dy := newTestDecays(t)

	// records store mother bins on rows; the accessor transposes back and
	// applies the bin widths, so every column j carries width_j
	m, err := dy.DecayMatrix(211, 14)
	require.NoError(t, err)
	widths := []float64{1, 2, 4, 8}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if got := m.At(i, j); got != widths[j] {
				t.Errorf("m[%d,%d] = %g, want %g", i, j, got, widths[j])
			}
		}
	}

	_, err = dy.DecayMatrix(211, 12)
	var noDecay *NoDecayError
	require.True(t, errors.As(err, &noDecay))
	assert.Equal(t, 211, noDecay.Mother)
	assert.Equal(t, 12, noDecay.Daughter)
}

// TestDecayYields_AliasInheritance pins the scoring-alias rule: the three
// muon aliases decay identically to the canonical muon, per charge sign.
func TestDecayYields_AliasInheritance(t *testing.T) {
	dy := newTestDecays(t)

	for _, alias := range []int{7013, 7113, 7213} {
		assert.Equal(t, dy.Daughters(13), dy.Daughters(alias), "alias %d", alias)
		assert.Equal(t, dy.Daughters(-13), dy.Daughters(-alias), "alias %d", -alias)

		for _, d := range dy.Daughters(13) {
			want, err := dy.DecayMatrix(13, d)
			require.NoError(t, err)
			got, err := dy.DecayMatrix(alias, d)
			require.NoError(t, err)
			assert.True(t, mat.Equal(want, got), "alias %d daughter %d", alias, d)
		}
		for _, d := range dy.Daughters(-13) {
			want, err := dy.DecayMatrix(-13, d)
			require.NoError(t, err)
			got, err := dy.DecayMatrix(-alias, d)
			require.NoError(t, err)
			assert.True(t, mat.Equal(want, got), "alias %d daughter %d", -alias, d)
		}
	}

	// 7313 is not an inheriting alias
	assert.Empty(t, dy.Daughters(7313))
}

func TestDecayYields_AliasConflictIsFatal(t *testing.T) {
	// GIVEN a source that already tabulates channels for an alias,
	// WHEN the table is built, THEN index construction fails hard:
	// inheriting over existing channels would silently overwrite physics
	src := testDecaySource()
	src.Records[Pair{Src: 7013, Prod: 14}] = constDense(4, 1)

	_, err := NewDecayYields(src, testGrid(t))
	var dup *DuplicateRegistrationError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, 7013, dup.Source)
}

func TestDecayYields_AssignSubmatrix(t *testing.T) {
	dy := newTestDecays(t)
	d := dy.Grid().Dim()
	target := mat.NewDense(d, d, nil)

	err := dy.AssignSubmatrix(211, Range{Lo: 0, Hi: 2}, 14, Range{Lo: 1, Hi: 4}, target)
	require.NoError(t, err)

	full, err := dy.DecayMatrix(211, 14)
	require.NoError(t, err)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			want := 0.0
			if i >= 1 && j < 2 {
				want = full.At(i, j)
			}
			if got := target.At(i, j); got != want {
				t.Errorf("target[%d,%d] = %g, want %g", i, j, got, want)
			}
		}
	}
}

func TestDecayYields_Mothers(t *testing.T) {
	dy := newTestDecays(t)
	mothers := dy.Mothers()

	// aliases are addressable mothers alongside the tabulated ones
	for _, id := range []int{-7213, -7113, -7013, -13, 13, 211, 7013, 7113, 7213} {
		assert.Contains(t, mothers, id)
	}
	// ascending order
	for i := 1; i < len(mothers); i++ {
		assert.Less(t, mothers[i-1], mothers[i])
	}
}
