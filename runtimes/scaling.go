// Derivation of speedup and parallel efficiency from aggregated averages.

package runtimes

import (
	"fmt"
)

type Mode int

const (
	StrongScaling Mode = iota
	WeakScaling
)

func (m Mode) String() string {
	if m == WeakScaling {
		return "weak"
	}
	return "strong"
}

type Metric struct {
	Speedup    float64
	Efficiency float64
}

type MetricSet map[Key]Metric

// ComputeScaling derives the scaling metrics for one access pattern across all core ticks, for
// every family in `families`.  The baseline of a family is its average at the smallest tick.
//
// The two modes deliberately use different speedup formulas and the asymmetry must be kept:
//
//   weak   (work per core fixed):  speedup = cores * baseline/current
//   strong (total work fixed):     speedup = baseline/current
//
// In both modes efficiency = speedup/cores, so ideal scaling has efficiency 1.  At the baseline
// tick, strong speedup is exactly 1 and weak speedup is exactly the baseline core count.
//
// A zero current average or a missing baseline makes the ratio undefined and fails the whole
// computation; a missing non-baseline bucket is an empty-bucket failure.
func ComputeScaling(
	set StatSet,
	pattern string,
	families []string,
	ticks []int,
	mode Mode,
) (MetricSet, error) {
	if len(ticks) == 0 {
		return nil, fmt.Errorf("%w: no core ticks", ErrEmptyBucket)
	}

	metrics := make(MetricSet, len(families)*len(ticks))
	for _, family := range families {
		base, found := set[Key{family, pattern, ticks[0]}]
		if !found {
			return nil, fmt.Errorf("%w: no baseline for family %s, pattern %s at %d cores",
				ErrDivisionUndefined, family, pattern, ticks[0])
		}
		for _, cores := range ticks {
			cur, err := set.Get(family, pattern, cores)
			if err != nil {
				return nil, err
			}
			if cur.Average == 0 {
				return nil, fmt.Errorf(
					"%w: zero average for family %s, pattern %s at %d cores",
					ErrDivisionUndefined, family, pattern, cores)
			}
			var speedup float64
			switch mode {
			case WeakScaling:
				speedup = float64(cores) * base.Average / cur.Average
			case StrongScaling:
				speedup = base.Average / cur.Average
			default:
				panic("Unexpected case")
			}
			metrics[Key{family, pattern, cores}] = Metric{
				Speedup:    speedup,
				Efficiency: speedup / float64(cores),
			}
		}
	}
	return metrics, nil
}
