// Re-projection of a raw per-trial results file into the "readable" wide form: one row per
// (algorithm, access pattern, core count) with all trial samples as trailing columns.  This is a
// convenience view of the same data, not a new data set; rows are ragged and a configuration
// that was never run still gets its three fixed columns.

package runtimes

import (
	"encoding/csv"
	"io"
	"strconv"
)

var resortHeader = []string{"algorithm", "access_pattern", "cores", "runtime[s]"}

func Resort(records []TimingRecord, out io.Writer) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write(resortHeader); err != nil {
		return err
	}

	samplesAt := make(map[Key][]float64)
	for _, r := range records {
		k := Key{r.Algorithm, r.Pattern, r.Cores}
		samplesAt[k] = append(samplesAt[k], r.Samples...)
	}

	// Sequential variants run on one core only; collect everything for the name and pattern.
	for _, algo := range SequentialAlgorithms {
		for _, pattern := range AccessPatterns {
			row := []string{algo, pattern, "1"}
			for _, r := range records {
				if r.Algorithm == algo && r.Pattern == pattern {
					for _, s := range r.Samples {
						row = append(row, formatSample(s))
					}
				}
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	// Parallel variants get one row per core tick above the sequential baseline.
	ticks := make([]int, 0)
	for _, t := range CoreTicks(records) {
		if t > 1 {
			ticks = append(ticks, t)
		}
	}
	for _, algo := range ParallelAlgorithms {
		for _, pattern := range AccessPatterns {
			for _, cores := range ticks {
				row := []string{algo, pattern, strconv.Itoa(cores)}
				for _, s := range samplesAt[Key{algo, pattern, cores}] {
					row = append(row, formatSample(s))
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}

	w.Flush()
	return w.Error()
}

func formatSample(s float64) string {
	return strconv.FormatFloat(s, 'g', -1, 64)
}
