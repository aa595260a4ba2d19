package cascade

import (
	"gonum.org/v1/gonum/mat"
)

// CouplingMatrices holds the block-structured coupling matrices over the
// full state vector: one for interactions, one for decays. Block (j, i)
// couples the state of particle in slot i into slot j.
type CouplingMatrices struct {
	Interactions *mat.Dense
	Decays       *mat.Dense
}

// AssembleCouplings builds the coupling matrices for the tracked species.
// Interaction yields are copied only over the hadron-active index ranges
// of projectile and secondary, since below the mixing energy the particle
// decays before it can interact; decay yields act over the full grid.
// Non-interacting blocks stay zero without materializing intermediate
// matrices.
func AssembleCouplings(parts *ParticleList, yields *InteractionYields, decays *DecayYields) (*CouplingMatrices, error) {
	n := parts.StateDim()
	cm := &CouplingMatrices{
		Interactions: mat.NewDense(n, n, nil),
		Decays:       mat.NewDense(n, n, nil),
	}
	full := Range{Lo: 0, Hi: parts.Dim()}

	for _, parent := range parts.All() {
		for _, child := range parts.All() {
			if yields.HasYield(parent.ID, child.ID) {
				block := cm.Interactions.Slice(child.Lidx(), child.Uidx(), parent.Lidx(), parent.Uidx()).(*mat.Dense)
				err := yields.AssignSubmatrix(parent.ID, parent.HadronRange(), child.ID, child.HadronRange(), block)
				if err != nil {
					return nil, err
				}
			}
			if decays.HasDecay(parent.ID, child.ID) {
				block := cm.Decays.Slice(child.Lidx(), child.Uidx(), parent.Lidx(), parent.Uidx()).(*mat.Dense)
				err := decays.AssignSubmatrix(parent.ID, full, child.ID, full, block)
				if err != nil {
					return nil, err
				}
			}
		}
	}
	return cm, nil
}
