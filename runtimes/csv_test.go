package runtimes

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestParseRecordsRaw(t *testing.T) {
	input := `algorithm,access pattern,cores,runtime
parallel_two_step,collision,2,10.5
parallel_two_step,collision,2,11.5
parallel_swap,stream,4,3.25
`
	records, err := ParseRecords(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("Got %d records wanted 3", len(records))
	}
	r := records[0]
	if r.Algorithm != "parallel_two_step" || r.Pattern != "collision" || r.Cores != 2 {
		t.Fatalf("Bad record %v", r)
	}
	if !slices.Equal(r.Samples, []float64{10.5}) {
		t.Fatalf("Got samples %v wanted [10.5]", r.Samples)
	}
}

// Wide rows from resorted files load through the same path, blank cells are missing trials.
func TestParseRecordsWide(t *testing.T) {
	input := `algorithm,access_pattern,cores,runtime[s]
sequential_swap,bundle,1,10,11,12
parallel_swap,bundle,2,5.5,,6.5
`
	records, err := ParseRecords(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("Got %d records wanted 2", len(records))
	}
	if !slices.Equal(records[0].Samples, []float64{10, 11, 12}) {
		t.Fatalf("Got samples %v wanted [10 11 12]", records[0].Samples)
	}
	if !slices.Equal(records[1].Samples, []float64{5.5, 6.5}) {
		t.Fatalf("Got samples %v wanted [5.5 6.5]", records[1].Samples)
	}
}

func TestParseRecordsMalformed(t *testing.T) {
	inputs := []string{
		// Too few columns
		"h1,h2,h3,h4\nparallel_swap,stream,2\n",
		// Core count not an integer
		"h1,h2,h3,h4\nparallel_swap,stream,x,10\n",
		// Core count not positive
		"h1,h2,h3,h4\nparallel_swap,stream,0,10\n",
		// Unparseable sample
		"h1,h2,h3,h4\nparallel_swap,stream,2,abc\n",
		// All sample cells blank
		"h1,h2,h3,h4\nparallel_swap,stream,2,,\n",
	}
	for _, input := range inputs {
		_, err := ParseRecords(strings.NewReader(input))
		if !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("Got %v wanted ErrMalformedRecord for %q", err, input)
		}
	}
}

func TestParseRecordsEmpty(t *testing.T) {
	records, err := ParseRecords(strings.NewReader("algorithm,access pattern,cores,runtime\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("Got %d records wanted 0", len(records))
	}
}

func TestCoreTicks(t *testing.T) {
	mk := func(cores ...int) []TimingRecord {
		rs := make([]TimingRecord, len(cores))
		for i, c := range cores {
			rs[i] = TimingRecord{"parallel_swap", "stream", c, []float64{1}}
		}
		return rs
	}

	// Repeated trials at a tick do not end the scan, a decrease does.
	ticks := CoreTicks(mk(1, 1, 2, 2, 4, 8, 8, 1, 2, 4, 8))
	if !slices.Equal(ticks, []int{1, 2, 4, 8}) {
		t.Fatalf("Got %v wanted [1 2 4 8]", ticks)
	}

	ticks = CoreTicks(mk(2, 4, 16))
	if !slices.Equal(ticks, []int{2, 4, 16}) {
		t.Fatalf("Got %v wanted [2 4 16]", ticks)
	}

	if ticks := CoreTicks(nil); len(ticks) != 0 {
		t.Fatalf("Got %v wanted empty", ticks)
	}
}
