package runtimes

import (
	"slices"
	"testing"
)

func TestFamiliesOf(t *testing.T) {
	if fs := FamiliesOf("parallel_two_step"); !slices.Equal(fs, []string{"two_step"}) {
		t.Fatalf("Got %v wanted [two_step]", fs)
	}
	// The sequential two-lattice baseline serves both two-lattice families.
	fs := FamiliesOf("sequential_two_lattice")
	if !slices.Equal(fs, []string{"two_lattice", "two_lattice_framework"}) {
		t.Fatalf("Got %v wanted [two_lattice two_lattice_framework]", fs)
	}
	if fs := FamiliesOf("no_such_algorithm"); fs != nil {
		t.Fatalf("Got %v wanted nil", fs)
	}
}

// Every algorithm in the vocabulary must resolve, and every resolved family must be in the
// family vocabulary.
func TestFamilyVocabulary(t *testing.T) {
	for _, algo := range append(slices.Clone(SequentialAlgorithms), ParallelAlgorithms...) {
		fs := FamiliesOf(algo)
		if fs == nil {
			t.Errorf("No families for %s", algo)
			continue
		}
		for _, f := range fs {
			if !slices.Contains(Families, f) {
				t.Errorf("Unknown family %s for %s", f, algo)
			}
		}
	}
}
