package cascade

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// TransportParticle couples an immutable particle identity with its
// computed regime and its assigned state-vector slot.
type TransportParticle struct {
	*Particle
	Regime RegimeResult
	Slot   int
}

// Lidx returns the lower index of the particle's range in the flattened
// state vector.
func (tp *TransportParticle) Lidx() int { return tp.Slot * tp.d }

// Uidx returns the upper (exclusive) index of the particle's range in the
// flattened state vector.
func (tp *TransportParticle) Uidx() int { return (tp.Slot + 1) * tp.d }

// HadronRange returns the grid index range where the particle behaves as
// an interacting hadron.
func (tp *TransportParticle) HadronRange() Range { return tp.Regime.HadronRange(tp.d) }

// ResonanceRange returns the grid index range where the particle behaves
// as a short-lived resonance.
func (tp *TransportParticle) ResonanceRange() Range { return tp.Regime.ResonanceRange(tp.d) }

// ParticleList owns the tracked species of one run: it assigns
// state-vector slots in the order given and computes every particle's
// regime once at construction.
type ParticleList struct {
	parts []*TransportParticle
	byID  map[int]*TransportParticle
	grid  *EnergyGrid
}

// NewParticleList builds identities for ids (duplicates ignored), assigns
// slots by position and classifies each particle against the active
// cross-section table.
func NewParticleList(ids []int, props ParticleProperties, grid *EnergyGrid, cs *CrossSectionTable, cfg RegimeConfig) *ParticleList {
	l := &ParticleList{
		parts: make([]*TransportParticle, 0, len(ids)),
		byID:  make(map[int]*TransportParticle, len(ids)),
		grid:  grid,
	}
	for _, id := range ids {
		if _, ok := l.byID[id]; ok {
			continue
		}
		p := NewParticle(id, props, grid.Dim())
		tp := &TransportParticle{
			Particle: p,
			Regime:   ComputeRegime(p, grid, cs, cfg),
			Slot:     len(l.parts),
		}
		l.parts = append(l.parts, tp)
		l.byID[id] = tp
		logrus.Debugf("particle %s (%d): mix_idx=%d E_mix=%.3e mixed=%t resonance=%t",
			p.Name, id, tp.Regime.MixIdx, tp.Regime.EMix, tp.Regime.IsMixed, tp.Regime.IsResonance)
	}
	return l
}

// Len returns the number of tracked species.
func (l *ParticleList) Len() int { return len(l.parts) }

// Dim returns the grid dimension.
func (l *ParticleList) Dim() int { return l.grid.Dim() }

// All returns the particles in slot order. Callers must not modify the
// returned slice.
func (l *ParticleList) All() []*TransportParticle { return l.parts }

// ByID returns the particle with the given identifier, or nil.
func (l *ParticleList) ByID(id int) *TransportParticle { return l.byID[id] }

// StateDim returns the length of the flattened state vector covering all
// tracked species.
func (l *ParticleList) StateDim() int { return len(l.parts) * l.grid.Dim() }

// ParticleIDs returns the sorted union of every species appearing in the
// interaction and decay tables: projectiles, their secondaries, mothers
// and their daughters.
func ParticleIDs(yields *InteractionYields, decays *DecayYields) []int {
	seen := make(map[int]bool)
	for _, proj := range yields.Projectiles() {
		seen[proj] = true
		for _, sec := range yields.Secondaries(proj) {
			seen[sec] = true
		}
	}
	for _, mother := range decays.Mothers() {
		seen[mother] = true
		for _, d := range decays.Daughters(mother) {
			seen[d] = true
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
