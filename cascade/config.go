package cascade

// RegimeConfig groups the inputs of the mixing-energy classification.
type RegimeConfig struct {
	CrossoverThreshold float64 // decay/interaction length ratio separating resonance from hadron behavior
	DisableMixing      bool    // true forces every particle into a pure regime (no mixed classification)
}

// DefaultRegimeConfig returns the reference crossover setting.
func DefaultRegimeConfig() RegimeConfig {
	return RegimeConfig{CrossoverThreshold: 0.5}
}

// Physical constants of the atmospheric target. Units are CGS to match the
// tabulated cross-sections (cm^2 after conversion from mbarn).
const (
	// airNucleusMass is the effective air-nucleus mass <A> * m_proton in
	// grams, with <A> = 14.5.
	airNucleusMass = 14.5 * 1.672621e-24

	// airMeanA is the mean mass number of air, also the per-nucleon scale
	// applied when converting proton-target yields to air targets.
	airMeanA = 14.5

	// surfaceAirDensity is the typical air density at the surface in g/cm^3,
	// multiplied onto decay lengths before comparing against interaction
	// lengths.
	surfaceAirDensity = 1.240e-3

	// criticalEnergyScale is the atmospheric scale height 6.4 km in cm,
	// entering the critical-energy estimate m*h/ctau.
	criticalEnergyScale = 6.4e5
)
