package cascade

import (
	"fmt"
	"sort"
)

// ModelNotFoundError reports a requested interaction model that is absent
// from a table and matches no known model family. Fatal to the caller.
type ModelNotFoundError struct {
	Name      string
	Available []string
}

func (e *ModelNotFoundError) Error() string {
	avail := append([]string(nil), e.Available...)
	sort.Strings(avail)
	return fmt.Sprintf("interaction model %q not found, available: %v", e.Name, avail)
}

// NoYieldError reports a direct yield-matrix access for a (projectile,
// secondary) pair with no non-zero record. HasYield never returns this;
// callers expecting possible absence must check HasYield first.
type NoYieldError struct {
	Model      string
	Projectile int
	Secondary  int
}

func (e *NoYieldError) Error() string {
	return fmt.Sprintf("no yield matrix in %s for %d -> %d", e.Model, e.Projectile, e.Secondary)
}

// NoDecayError is the decay-table counterpart of NoYieldError.
type NoDecayError struct {
	Mother   int
	Daughter int
}

func (e *NoDecayError) Error() string {
	return fmt.Sprintf("no decay matrix for %d -> %d", e.Mother, e.Daughter)
}

// UnsupportedSubmodelError reports an InjectSubmodel call with a name
// outside the closed set of supported alternate models.
type UnsupportedSubmodelError struct {
	Name string
}

func (e *UnsupportedSubmodelError) Error() string {
	return fmt.Sprintf("unsupported submodel %q", e.Name)
}

// DuplicateRegistrationError reports the same product registered twice for
// one source during index construction. It signals corrupt or ambiguous
// source tables and is always fatal, never silently resolved.
type DuplicateRegistrationError struct {
	Source  int
	Product int
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("index corruption: product %d registered twice for source %d", e.Product, e.Source)
}
