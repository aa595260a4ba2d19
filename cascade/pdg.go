package cascade

// Species classification follows a fixed PDG-numbering convention. The band
// boundaries below are named constants so the membership rules stay in one
// place; all checks are on the identifier magnitude unless noted.
const (
	PDGProton    = 2212
	PDGNeutron   = 2112
	PDGPiCharged = 211
	PDGKCharged  = 321
	PDGMuon      = 13
	PDGElectron  = 11
	PDGPhoton    = 22

	// Generic baryon band: 2000 < |id| < 5000, both ends exclusive.
	baryonBandLo = 2000
	baryonBandHi = 5000

	// Standard-model lepton band: 11 < |id| < 17, both ends exclusive.
	leptonBandLo = 11
	leptonBandHi = 17

	// Scoring-alias band: 7000 < |id| < 7500, both ends exclusive. Alias
	// identifiers address separate state-vector slots for particles whose
	// production history is scored separately (e.g. muons from pion decay).
	aliasBandLo = 7000
	aliasBandHi = 7500
)

// charmedMesonLike lists the identifiers whose inelastic cross-section is
// approximated by the charged-kaon curve: D+, D0, Ds and the tau lepton.
var charmedMesonLike = map[int]bool{411: true, 421: true, 431: true, 15: true}

// charmedBaryons lists the charmed baryons approximated by the proton curve.
var charmedBaryons = map[int]bool{4332: true, 4232: true, 4132: true}

// charmedProducts is the fixed set of charm secondaries replaced by
// InjectSubmodel. Covers the charmed mesons and baryons present in the
// yield tables.
var charmedProducts = []int{411, 421, 431, 4122, 4132, 4232, 4332}

// muonScoringAliases are the scoring variants of the muon that carry no
// decay tables of their own and inherit the canonical muon's channels at
// index-build time. 7313 is excluded: it is a plain copy handled upstream.
var muonScoringAliases = []int{7013, 7113, 7213}

func abs(id int) int {
	if id < 0 {
		return -id
	}
	return id
}

// IsNucleon reports whether id is a proton or neutron (either charge state).
func IsNucleon(id int) bool {
	a := abs(id)
	return a == PDGProton || a == PDGNeutron
}

// InBaryonBand reports whether id falls in the generic baryon band.
func InBaryonBand(id int) bool {
	a := abs(id)
	return a > baryonBandLo && a < baryonBandHi
}

// InLeptonBand reports whether id is a standard-model lepton other than the
// electron.
func InLeptonBand(id int) bool {
	a := abs(id)
	return a > leptonBandLo && a < leptonBandHi
}

// InAliasBand reports whether id is a scoring alias.
func InAliasBand(id int) bool {
	a := abs(id)
	return a > aliasBandLo && a < aliasBandHi
}

// IsCharmedMesonLike reports membership in the kaon-substitution set.
func IsCharmedMesonLike(id int) bool { return charmedMesonLike[abs(id)] }

// IsCharmedBaryon reports membership in the proton-substitution set.
func IsCharmedBaryon(id int) bool { return charmedBaryons[abs(id)] }

// IsCharmedProduct reports whether id is one of the charm secondaries
// covered by submodel injection.
func IsCharmedProduct(id int) bool {
	a := abs(id)
	for _, c := range charmedProducts {
		if a == c {
			return true
		}
	}
	return false
}

// CharmedProducts returns the signed identifiers (particle and antiparticle)
// of every charm secondary covered by submodel injection.
func CharmedProducts() []int {
	out := make([]int, 0, 2*len(charmedProducts))
	for _, c := range charmedProducts {
		out = append(out, c, -c)
	}
	return out
}
