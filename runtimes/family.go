package runtimes

// Raw algorithm name -> the families its measurements contribute to.  The sequential two-lattice
// run is the single-core baseline of both two-lattice variants and therefore fans out to two
// families; every other name maps to exactly one.  This table is part of the data contract with
// the harness and must not be reordered or pruned.
var familiesOf = map[string][]string{
	"parallel_two_lattice":           {"two_lattice"},
	"parallel_two_lattice_framework": {"two_lattice_framework"},
	"parallel_two_step":              {"two_step"},
	"sequential_two_step":            {"two_step"},
	"parallel_swap":                  {"swap"},
	"sequential_swap":                {"swap"},
	"parallel_shift":                 {"shift"},
	"sequential_shift":               {"shift"},
	"sequential_two_lattice":         {"two_lattice", "two_lattice_framework"},
}

// FamiliesOf returns the families the named algorithm contributes to, nil for unknown names.
// The result is shared; callers must not mutate it.
func FamiliesOf(algorithm string) []string {
	return familiesOf[algorithm]
}
