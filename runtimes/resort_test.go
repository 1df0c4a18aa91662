package runtimes

import (
	"strings"
	"testing"
)

func TestResort(t *testing.T) {
	records := []TimingRecord{
		{"sequential_swap", "collision", 1, []float64{10}},
		{"parallel_swap", "collision", 2, []float64{5}},
		{"parallel_swap", "collision", 2, []float64{6}},
		{"parallel_swap", "collision", 4, []float64{3}},
	}

	var out strings.Builder
	if err := Resort(records, &out); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")

	// Header, then 4 sequential algorithms x 3 patterns, then 5 parallel algorithms x 3
	// patterns x 2 ticks above the baseline.
	want := 1 + 4*3 + 5*3*2
	if len(lines) != want {
		t.Fatalf("Got %d lines wanted %d", len(lines), want)
	}
	if lines[0] != "algorithm,access_pattern,cores,runtime[s]" {
		t.Fatalf("Bad header %s", lines[0])
	}

	// Configurations that were never run still get their three fixed columns.
	if lines[1] != "sequential_two_lattice,collision,1" {
		t.Fatalf("Got %s wanted empty sequential_two_lattice row", lines[1])
	}

	// sequential_swap is the third sequential algorithm; collision is its first row.
	if lines[7] != "sequential_swap,collision,1,10" {
		t.Fatalf("Got %s wanted sequential_swap,collision,1,10", lines[7])
	}

	// parallel_swap is the fourth parallel algorithm: 13 + 3*3*2 = 31.  The two records at 2
	// cores merge into one wide row.
	if lines[31] != "parallel_swap,collision,2,5,6" {
		t.Fatalf("Got %s wanted parallel_swap,collision,2,5,6", lines[31])
	}
	if lines[32] != "parallel_swap,collision,4,3" {
		t.Fatalf("Got %s wanted parallel_swap,collision,4,3", lines[32])
	}
}
