// Ranking of configurations at the maximum core count.

package runtimes

import (
	"fmt"
	"slices"
)

type RankedConfig struct {
	Family  string
	Pattern string
	Metric  Metric
}

// Rank picks, for every family, the access pattern with the best metric at the maximum core
// tick, then orders the family winners descending by the same metric.  The first entry is the
// globally best configuration, the second the runner-up.
//
// The metric is speedup, or efficiency if byEfficiency is set.  Ties keep vocabulary order
// (stable sort); that order carries no meaning, it just makes the output deterministic.
//
// metricsByPattern maps an access pattern to the MetricSet computed for it; every pattern in
// `patterns` must have metrics for every family at maxTick.
func Rank(
	metricsByPattern map[string]MetricSet,
	families, patterns []string,
	maxTick int,
	byEfficiency bool,
) ([]RankedConfig, error) {
	value := func(m Metric) float64 {
		if byEfficiency {
			return m.Efficiency
		}
		return m.Speedup
	}

	winners := make([]RankedConfig, 0, len(families))
	for _, family := range families {
		candidates := make([]RankedConfig, 0, len(patterns))
		for _, pattern := range patterns {
			set, found := metricsByPattern[pattern]
			if !found {
				return nil, fmt.Errorf("%w: no metrics for pattern %s", ErrEmptyBucket, pattern)
			}
			m, found := set[Key{family, pattern, maxTick}]
			if !found {
				return nil, fmt.Errorf("%w: family %s, pattern %s, %d cores",
					ErrEmptyBucket, family, pattern, maxTick)
			}
			candidates = append(candidates, RankedConfig{family, pattern, m})
		}
		slices.SortStableFunc(candidates, func(a, b RankedConfig) int {
			switch {
			case value(a.Metric) > value(b.Metric):
				return -1
			case value(a.Metric) < value(b.Metric):
				return 1
			default:
				return 0
			}
		})
		winners = append(winners, candidates[0])
	}

	slices.SortStableFunc(winners, func(a, b RankedConfig) int {
		switch {
		case value(a.Metric) > value(b.Metric):
			return -1
		case value(a.Metric) < value(b.Metric):
			return 1
		default:
			return 0
		}
	})
	return winners, nil
}
