package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// particleSpec is one entry of the particle property YAML.
type particleSpec struct {
	ID    int     `yaml:"id"`
	Name  string  `yaml:"name"`
	Class string  `yaml:"class"` // meson | baryon | lepton
	Mass  float64 `yaml:"mass"`  // GeV
	CTau  float64 `yaml:"ctau"`  // cm; 0 or absent = stable
}

type particleFile struct {
	Particles []particleSpec `yaml:"particles"`
}

// ParticleTable implements cascade.ParticleProperties from a YAML property
// file. Entries are keyed by identifier magnitude: antiparticles share
// their particle's properties. Scoring aliases (7x13 band) resolve to the
// canonical lepton encoded in their last two digits.
type ParticleTable struct {
	byID map[int]particleSpec
}

// LoadParticleTable reads a particle property YAML file.
func LoadParticleTable(path string) (*ParticleTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read particle table: %w", err)
	}
	return ParseParticleTable(raw)
}

// ParseParticleTable parses particle property YAML content.
func ParseParticleTable(raw []byte) (*ParticleTable, error) {
	var file particleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse particle table: %w", err)
	}
	t := &ParticleTable{byID: make(map[int]particleSpec, len(file.Particles))}
	for _, spec := range file.Particles {
		if spec.ID <= 0 {
			return nil, fmt.Errorf("particle table: non-positive identifier %d (entries are keyed by magnitude)", spec.ID)
		}
		if _, ok := t.byID[spec.ID]; ok {
			return nil, fmt.Errorf("particle table: duplicate entry for %d", spec.ID)
		}
		t.byID[spec.ID] = spec
	}
	return t, nil
}

// canonical maps an identifier to its property-table key: magnitude, with
// scoring aliases folded onto the lepton they score (last two digits of
// the alias identifier).
func canonical(id int) int {
	a := id
	if a < 0 {
		a = -a
	}
	if a > 7000 && a < 7500 {
		return a % 100
	}
	return a
}

func (t *ParticleTable) lookup(id int) (particleSpec, bool) {
	spec, ok := t.byID[canonical(id)]
	return spec, ok
}

// Name returns the display name for id, with a "-bar" suffix for
// antiparticles, or a placeholder for unknown identifiers.
func (t *ParticleTable) Name(id int) string {
	spec, ok := t.lookup(id)
	if !ok {
		return fmt.Sprintf("PDG(%d)", id)
	}
	if id < 0 {
		return spec.Name + "-bar"
	}
	return spec.Name
}

// Mass returns the mass in GeV, or an error for unknown identifiers.
func (t *ParticleTable) Mass(id int) (float64, error) {
	spec, ok := t.lookup(id)
	if !ok {
		return 0, fmt.Errorf("no mass data for %d", id)
	}
	return spec.Mass, nil
}

// CTau returns the proper lifetime times c in cm. Stable particles return
// 0; unknown identifiers return an error.
func (t *ParticleTable) CTau(id int) (float64, error) {
	spec, ok := t.lookup(id)
	if !ok {
		return 0, fmt.Errorf("no lifetime data for %d", id)
	}
	return spec.CTau, nil
}

// IsMeson reports whether id is classified as a meson.
func (t *ParticleTable) IsMeson(id int) bool {
	spec, ok := t.lookup(id)
	return ok && spec.Class == "meson"
}

// IsBaryon reports whether id is classified as a baryon.
func (t *ParticleTable) IsBaryon(id int) bool {
	spec, ok := t.lookup(id)
	return ok && spec.Class == "baryon"
}
