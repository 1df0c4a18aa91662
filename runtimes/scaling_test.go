package runtimes

import (
	"errors"
	"testing"
)

func statSetOf(avgs map[Key]float64) StatSet {
	set := make(StatSet, len(avgs))
	for k, avg := range avgs {
		set[k] = &Stat{N: 1, Average: avg}
	}
	return set
}

func TestStrongScaling(t *testing.T) {
	set := statSetOf(map[Key]float64{
		{"two_step", "stream", 1}: 10.0,
		{"two_step", "stream", 4}: 2.0,
	})
	metrics, err := ComputeScaling(set, "stream", []string{"two_step"}, []int{1, 4}, StrongScaling)
	if err != nil {
		t.Fatal(err)
	}

	// Strong speedup at the baseline tick is exactly 1.
	m := metrics[Key{"two_step", "stream", 1}]
	if m.Speedup != 1.0 || m.Efficiency != 1.0 {
		t.Fatalf("Got %v wanted speedup 1, efficiency 1", m)
	}

	m = metrics[Key{"two_step", "stream", 4}]
	if m.Speedup != 5.0 {
		t.Fatalf("Got speedup %v wanted 5", m.Speedup)
	}
	if m.Efficiency != 1.25 {
		t.Fatalf("Got efficiency %v wanted 1.25", m.Efficiency)
	}
}

func TestWeakScaling(t *testing.T) {
	set := statSetOf(map[Key]float64{
		{"swap", "bundle", 2}: 10.0,
		{"swap", "bundle", 8}: 10.0,
	})
	metrics, err := ComputeScaling(set, "bundle", []string{"swap"}, []int{2, 8}, WeakScaling)
	if err != nil {
		t.Fatal(err)
	}

	// Weak speedup at the baseline tick is exactly the baseline core count.
	m := metrics[Key{"swap", "bundle", 2}]
	if m.Speedup != 2.0 || m.Efficiency != 1.0 {
		t.Fatalf("Got %v wanted speedup 2, efficiency 1", m)
	}

	// Flat runtime at fixed work per core is ideal weak scaling.
	m = metrics[Key{"swap", "bundle", 8}]
	if m.Speedup != 8.0 || m.Efficiency != 1.0 {
		t.Fatalf("Got %v wanted speedup 8, efficiency 1", m)
	}
}

func TestScalingZeroAverage(t *testing.T) {
	set := statSetOf(map[Key]float64{
		{"shift", "collision", 1}: 10.0,
		{"shift", "collision", 2}: 0.0,
	})
	_, err := ComputeScaling(set, "collision", []string{"shift"}, []int{1, 2}, StrongScaling)
	if !errors.Is(err, ErrDivisionUndefined) {
		t.Fatalf("Got %v wanted ErrDivisionUndefined", err)
	}
}

func TestScalingMissingBaseline(t *testing.T) {
	set := statSetOf(map[Key]float64{
		{"shift", "collision", 2}: 10.0,
	})
	_, err := ComputeScaling(set, "collision", []string{"shift"}, []int{1, 2}, StrongScaling)
	if !errors.Is(err, ErrDivisionUndefined) {
		t.Fatalf("Got %v wanted ErrDivisionUndefined", err)
	}
}

func TestScalingMissingBucket(t *testing.T) {
	set := statSetOf(map[Key]float64{
		{"shift", "collision", 1}: 10.0,
	})
	_, err := ComputeScaling(set, "collision", []string{"shift"}, []int{1, 2}, StrongScaling)
	if !errors.Is(err, ErrEmptyBucket) {
		t.Fatalf("Got %v wanted ErrEmptyBucket", err)
	}
}

func TestScalingNoTicks(t *testing.T) {
	_, err := ComputeScaling(StatSet{}, "collision", []string{"shift"}, nil, StrongScaling)
	if !errors.Is(err, ErrEmptyBucket) {
		t.Fatalf("Got %v wanted ErrEmptyBucket", err)
	}
}
