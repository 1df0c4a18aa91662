// In-memory model of the benchmark runtime data produced by the simulation harness.

package runtimes

import (
	"errors"
)

// One data row of a results file: the runtimes of all repeated trials of one algorithm variant
// under one access pattern at one core count.  The raw per-trial files have exactly one sample
// per row; the resorted "readable" files have all of them.  Samples is never empty and Cores is
// at least 1 for records produced by the loader.
type TimingRecord struct {
	Algorithm string
	Pattern   string
	Cores     int
	Samples   []float64
}

// Aggregation key.  Family is an algorithm family name, not a raw algorithm name.
type Key struct {
	Family  string
	Pattern string
	Cores   int
}

// Statistics for one aggregation bucket.  Lower and Upper are the error bounds of the one-sided
// chi-squared confidence interval on the population standard deviation, not a mean-centered
// interval.  See ConfidenceBounds.
type Stat struct {
	N       int
	Average float64
	Lower   float64
	Upper   float64
}

var (
	// A results row that cannot be parsed.  Always fatal: charts must not be derived from
	// partially-read input.
	ErrMalformedRecord = errors.New("malformed record")

	// An algorithm name missing from the family table.  Rows with unknown names are skipped
	// with a diagnostic so that vocabulary drift does not halt analysis of the valid rows.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// A speedup or efficiency ratio with a zero denominator or no baseline measurement.
	ErrDivisionUndefined = errors.New("undefined scaling ratio")

	// A requested (family, access pattern, core count) combination that never appeared in the
	// input.  Defaulting such a bucket to zero would silently corrupt every derived metric, so
	// this is fatal.
	ErrEmptyBucket = errors.New("no samples for configuration")
)

// The fixed vocabularies of the benchmark harness.  Order matters: it is the presentation order
// for tables and charts, and the tie-breaking order for rankings.
var (
	AccessPatterns = []string{"collision", "stream", "bundle"}

	Families = []string{"two_step", "swap", "two_lattice_framework", "two_lattice", "shift"}

	SequentialAlgorithms = []string{
		"sequential_two_lattice",
		"sequential_two_step",
		"sequential_swap",
		"sequential_shift",
	}

	ParallelAlgorithms = []string{
		"parallel_two_lattice",
		"parallel_two_lattice_framework",
		"parallel_two_step",
		"parallel_swap",
		"parallel_shift",
	}
)

// Human-readable family names, used in chart legends.
var FamilyLabels = map[string]string{
	"two_step":              "Two-step",
	"swap":                  "Swap",
	"two_lattice_framework": "Framework two-lattice",
	"two_lattice":           "Non-framework two-lattice",
	"shift":                 "Shift",
}
