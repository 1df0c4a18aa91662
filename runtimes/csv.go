// Reading of results files.
//
// A results file is comma-separated UTF-8 text.  The first row is a header and is ignored by
// position, not by name.  Every other row is
//
//   algorithm, access_pattern, cores, sample_0 [, sample_1, ...]
//
// with at least one sample column.  The raw files written by the harness have exactly one sample
// per row; the resorted files have one row per configuration with all samples.  Both shapes load
// through the same path and the aggregator merges duplicate configurations, so the two are
// interchangeable as input.
//
// Parse errors are not recovered from; the caller gets the error for the first bad row and
// decides what to do (in practice: abort the run).

package runtimes

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

func ReadRecords(filename string) ([]TimingRecord, error) {
	input, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer input.Close()
	records, err := ParseRecords(bufio.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return records, nil
}

func ParseRecords(input io.Reader) ([]TimingRecord, error) {
	rdr := csv.NewReader(input)
	// Rows are arbitrarily wide and possibly uneven.
	rdr.FieldsPerRecord = -1

	records := make([]TimingRecord, 0)
	line := 0
	for {
		fields, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		line++
		if line == 1 {
			// Header row, ignored by position.
			continue
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("%w: line %d: expected at least 4 columns, got %d",
				ErrMalformedRecord, line, len(fields))
		}
		cores, err := strconv.Atoi(fields[2])
		if err != nil || cores < 1 {
			return nil, fmt.Errorf("%w: line %d: core count %q is not a positive integer",
				ErrMalformedRecord, line, fields[2])
		}
		samples := make([]float64, 0, len(fields)-3)
		for _, f := range fields[3:] {
			if f == "" {
				// A blank cell in a resorted file is a missing trial, not a sample.
				continue
			}
			s, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: sample %q is not a number",
					ErrMalformedRecord, line, f)
			}
			samples = append(samples, s)
		}
		if len(samples) == 0 {
			return nil, fmt.Errorf("%w: line %d: no samples", ErrMalformedRecord, line)
		}
		records = append(records, TimingRecord{
			Algorithm: fields[0],
			Pattern:   fields[1],
			Cores:     cores,
			Samples:   samples,
		})
	}
	return records, nil
}

// CoreTicks returns the canonical x axis of the data set: the strictly increasing prefix of the
// distinct core counts, in record order.  The scan stops at the first decrease, which marks the
// start of the next algorithm block.  This relies on the harness writing each algorithm's rows
// in ascending core order; it is a positional contract on the input, not a sort.
func CoreTicks(records []TimingRecord) []int {
	ticks := make([]int, 0)
	maxCores := 0
	for _, r := range records {
		switch {
		case r.Cores > maxCores:
			ticks = append(ticks, r.Cores)
			maxCores = r.Cores
		case r.Cores == maxCores:
			// Repeated trials at the current tick.
		default:
			return ticks
		}
	}
	return ticks
}
