// Package cascade manages the tabulated physics data behind an atmospheric
// particle-cascade transport calculation: interaction yield matrices, decay
// yield matrices, inelastic hadron-air cross-sections and the per-particle
// energy-regime classification that decides where on the energy grid a
// species behaves as an interacting hadron versus a short-lived resonance.
//
// # Reading Guide
//
// Start with these three files to understand the data model:
//   - grid.go: the shared energy grid (bin centers, edges, width weights)
//   - yields.go: the (projectile, secondary) yield dictionary and its index
//   - particle.go: particle identity and the mixing-energy classification
//
// # Architecture
//
// The package owns no persistence. All tabulated data arrives through the
// Source structs in source.go, already deserialized by a collaborator (the
// reference loader lives in cascade/dataset). Tables are built once per run:
//
//	yields  := NewInteractionYields(ysrc, cssrc, "SIBYLL2.3")
//	decays  := NewDecayYields(dsrc, yields.Grid())
//	cs      := NewCrossSectionTable(cssrc, "SIBYLL2.3")
//	parts   := NewParticleList(ids, props, yields.Grid(), cs, cfg)
//
// The outer solver then queries the tables block by block (AssignSubmatrix)
// to assemble the coupling matrices; AssembleCouplings in assemble.go shows
// the full pattern.
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - ParticleProperties: name, species, mass and proper lifetime per PDG ID
//   - SubmodelYielder: replacement charm yield matrices for InjectSubmodel
//
// All matrix data is gonum (*mat.Dense / *mat.VecDense); the bin-width
// weights are a *mat.DiagDense so the per-bin integration is a plain Mul.
package cascade
