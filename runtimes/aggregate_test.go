package runtimes

import (
	"errors"
	"math"
	"testing"
)

func TestAggregate(t *testing.T) {
	records := []TimingRecord{
		{"parallel_two_step", "collision", 2, []float64{10, 12}},
		{"parallel_two_step", "collision", 2, []float64{14}},
		{"sequential_two_lattice", "stream", 1, []float64{8}},
	}
	set, err := Aggregate(records, 0.95)
	if err != nil {
		t.Fatal(err)
	}
	// two_step bucket plus the two-lattice fan-out buckets.
	if len(set) != 3 {
		t.Fatalf("Got %d buckets wanted 3", len(set))
	}

	// Duplicate configurations merge their samples before statistics.
	s, err := set.Get("two_step", "collision", 2)
	if err != nil {
		t.Fatal(err)
	}
	if s.N != 3 {
		t.Fatalf("Got n=%d wanted 3", s.N)
	}
	if s.Average != 12 {
		t.Fatalf("Got avg=%v wanted 12", s.Average)
	}

	// The single sequential two-lattice row contributes to both families.
	for _, family := range []string{"two_lattice", "two_lattice_framework"} {
		s, err := set.Get(family, "stream", 1)
		if err != nil {
			t.Fatal(err)
		}
		if s.N != 1 || s.Average != 8 {
			t.Fatalf("Got %v for %s", *s, family)
		}
	}

	if _, err := set.Get("two_step", "collision", 4); !errors.Is(err, ErrEmptyBucket) {
		t.Fatalf("Got %v wanted ErrEmptyBucket", err)
	}
}

func TestAggregateUnknownAlgorithm(t *testing.T) {
	records := []TimingRecord{
		{"fancy_new_algorithm", "collision", 2, []float64{10}},
		{"parallel_swap", "collision", 2, []float64{10}},
	}
	set, err := Aggregate(records, 0.95)
	if err != nil {
		t.Fatal(err)
	}
	// The unknown row is skipped, not fatal.
	if len(set) != 1 {
		t.Fatalf("Got %d buckets wanted 1", len(set))
	}
}

func TestAggregateBadConfidence(t *testing.T) {
	for _, confidence := range []float64{0, 1, -0.5, 1.5} {
		if _, err := Aggregate(nil, confidence); err == nil {
			t.Errorf("No error for confidence %v", confidence)
		}
	}
}

// Reference values computed independently for sigma=2, n=10, confidence=0.95 with the
// chi-squared distribution at df=n: quantiles 20.483177350807388 and 3.24697278023684.
func TestConfidenceBounds(t *testing.T) {
	lower, upper := ConfidenceBounds(2.0, 10, 0.95)
	if !closeTo(lower, 1.397434088326849) {
		t.Fatalf("Got lower=%v wanted 1.397434088326849", lower)
	}
	if !closeTo(upper, 3.5098670948267126) {
		t.Fatalf("Got upper=%v wanted 3.5098670948267126", upper)
	}
}

// The aggregator uses the population standard deviation: std([10,12,14]) = sqrt(8/3).
func TestAggregatePopulationStd(t *testing.T) {
	records := []TimingRecord{
		{"parallel_swap", "bundle", 2, []float64{10, 12, 14}},
	}
	set, err := Aggregate(records, 0.95)
	if err != nil {
		t.Fatal(err)
	}
	s, err := set.Get("swap", "bundle", 2)
	if err != nil {
		t.Fatal(err)
	}
	sigma := 1.632993161855452
	wantLower, wantUpper := ConfidenceBounds(sigma, 3, 0.95)
	if !closeTo(s.Lower, wantLower) || !closeTo(s.Upper, wantUpper) {
		t.Fatalf("Got bounds (%v,%v) wanted (%v,%v)", s.Lower, s.Upper, wantLower, wantUpper)
	}
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) <= 1e-9*math.Max(math.Abs(got), math.Abs(want))
}
