package cascade

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Range is a half-open [Lo, Hi) index interval on the energy grid.
type Range struct {
	Lo int
	Hi int
}

// Empty reports whether the range covers no bins.
func (r Range) Empty() bool { return r.Hi <= r.Lo }

// Len returns the number of bins covered.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.Hi - r.Lo
}

// Particle is the immutable identity and species classification of one
// tracked species. Mutable transport state (regime, state-vector slot)
// lives on TransportParticle.
type Particle struct {
	ID   int
	Name string

	IsHadron bool
	IsMeson  bool
	IsBaryon bool
	IsLepton bool
	IsAlias  bool

	// Mass in GeV and proper lifetime times c in cm. Zero when the
	// property source has no data for the identifier; hasProps records
	// which case applies.
	Mass float64
	CTau float64

	// ECrit is the critical energy in air where decay and interaction are
	// balanced, m*h/ctau with h the atmospheric scale height. +Inf for
	// stable particles and for identifiers without property data.
	ECrit float64

	hasProps bool
	d        int
}

// NewParticle builds the identity of id from the property source on a
// d-bin grid. Missing mass or lifetime data is recorded, not an error:
// the classifier treats such species as stable.
func NewParticle(id int, props ParticleProperties, d int) *Particle {
	p := &Particle{ID: id, Name: props.Name(id), d: d}

	switch {
	case props.IsMeson(id):
		p.IsHadron = true
		p.IsMeson = true
	case props.IsBaryon(id):
		p.IsHadron = true
		p.IsBaryon = true
	default:
		p.IsLepton = true
		if abs(id) > 20 {
			p.IsAlias = true
		}
	}

	mass, merr := props.Mass(id)
	ctau, cerr := props.CTau(id)
	if merr == nil && cerr == nil {
		p.Mass = mass
		p.CTau = ctau
		p.hasProps = true
	} else {
		logrus.Debugf("particle %d (%s): no mass/lifetime data, treated as stable", id, p.Name)
	}

	p.ECrit = math.Inf(1)
	if p.hasProps && p.CTau > 0 {
		p.ECrit = p.Mass * criticalEnergyScale / p.CTau
	}
	return p
}

// Dim returns the grid dimension the particle was built for.
func (p *Particle) Dim() int { return p.d }

// InverseDecayLength returns rho/lambda_dec over the grid in 1/cm with the
// air density factored out: m / (ctau * E) per bin, zeroed below mixIdx.
// Stable particles and particles without property data return all zeros
// (infinite decay length).
func (p *Particle) InverseDecayLength(grid *EnergyGrid, mixIdx int) []float64 {
	out := make([]float64, p.d)
	if !p.hasProps || p.CTau <= 0 || p.Mass <= 0 ||
		math.IsNaN(p.CTau) || math.IsNaN(p.Mass) {
		return out
	}
	for i, e := range grid.Centers() {
		out[i] = p.Mass / (p.CTau * e)
	}
	for i := 0; i < mixIdx && i < p.d; i++ {
		out[i] = 0
	}
	return out
}

// InverseInteractionLength returns 1/lambda_int in air over the grid in
// cm^2/g, using the cross-section substitution policy and the effective
// air-nucleus mass.
func (p *Particle) InverseInteractionLength(cs *CrossSectionTable) []float64 {
	sigma := cs.CrossSection(p.ID, UnitCm2)
	out := make([]float64, p.d)
	for i := range out {
		out[i] = sigma.AtVec(i) / airNucleusMass
	}
	return out
}

func (p *Particle) String() string {
	return fmt.Sprintf("%s (%d): hadron=%t meson=%t baryon=%t lepton=%t alias=%t E_crit=%.2e",
		p.Name, p.ID, p.IsHadron, p.IsMeson, p.IsBaryon, p.IsLepton, p.IsAlias, p.ECrit)
}

// RegimeResult is the outcome of the mixing-energy classification.
// Immutable once computed. The zero value is the pure-hadron regime.
type RegimeResult struct {
	MixIdx      int     // first grid index with hadron behavior
	EMix        float64 // grid energy at MixIdx; 0 for pure hadrons
	IsMixed     bool    // transitions from resonance to hadron on the grid
	IsResonance bool    // resonance behavior over the whole grid
}

// HadronRange returns the grid index range where the particle interacts
// hadronically: the whole grid for pure hadrons, empty for pure
// resonances, [MixIdx, d) when mixed.
func (r RegimeResult) HadronRange(d int) Range {
	if r.IsResonance {
		return Range{Lo: d, Hi: d}
	}
	return Range{Lo: r.MixIdx, Hi: d}
}

// ResonanceRange returns the complementary range where decay dominates.
func (r RegimeResult) ResonanceRange(d int) Range {
	if r.IsResonance {
		return Range{Lo: 0, Hi: d}
	}
	return Range{Lo: 0, Hi: r.MixIdx}
}

// ComputeRegime classifies p's transport regime over the grid. Pure
// function of already-loaded tables; safe to run concurrently across
// particles.
//
// Nucleons are always pure hadrons. Otherwise the decay/interaction
// length ratio (with the surface air density applied to the decay length)
// is compared against the crossover threshold bin by bin: never above
// means pure resonance, always above (or mixing disabled) means pure
// hadron, and a crossing means mixed with MixIdx at the first bin above
// threshold. The ratio is assumed non-decreasing with energy; this is a
// precondition on the supplied tables, not an enforced invariant.
// Zero-lifetime, zero-cross-section and missing-data conditions
// short-circuit to pure hadron instead of propagating NaN.
func ComputeRegime(p *Particle, grid *EnergyGrid, cs *CrossSectionTable, cfg RegimeConfig) RegimeResult {
	if IsNucleon(p.ID) {
		return RegimeResult{}
	}
	d := grid.Dim()

	invInt := p.InverseInteractionLength(cs)
	invDec := p.InverseDecayLength(grid, 0)
	if !anyPositive(invDec) || !anyPositive(invInt) {
		return RegimeResult{}
	}

	// ratio of decay length (scaled to the surface air density) over
	// interaction length per bin
	ratio := make([]float64, d)
	minr, maxr := math.Inf(1), math.Inf(-1)
	for i := 0; i < d; i++ {
		ldec := surfaceAirDensity / invDec[i]
		lint := 1.0 / invInt[i]
		ratio[i] = ldec / lint
		minr = math.Min(minr, ratio[i])
		maxr = math.Max(maxr, ratio[i])
	}

	switch {
	case maxr < cfg.CrossoverThreshold:
		return RegimeResult{
			MixIdx:      d - 1,
			EMix:        grid.Centers()[d-1],
			IsResonance: true,
		}
	case minr > cfg.CrossoverThreshold || cfg.DisableMixing:
		return RegimeResult{}
	default:
		for i, r := range ratio {
			if r > cfg.CrossoverThreshold {
				return RegimeResult{MixIdx: i, EMix: grid.Centers()[i], IsMixed: true}
			}
		}
		// unreachable for the monotone tables this precondition assumes
		return RegimeResult{}
	}
}

func anyPositive(xs []float64) bool {
	for _, x := range xs {
		if x > 0 {
			return true
		}
	}
	return false
}
