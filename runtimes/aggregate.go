// Aggregation of timing records into per-configuration statistics.

package runtimes

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"lbmreport/common"
)

const DefaultConfidence = 0.95

type StatSet map[Key]*Stat

// Get returns the statistics for a configuration that is required to be present.
func (set StatSet) Get(family, pattern string, cores int) (*Stat, error) {
	if s, found := set[Key{family, pattern, cores}]; found {
		return s, nil
	}
	return nil, fmt.Errorf("%w: family %s, pattern %s, %d cores",
		ErrEmptyBucket, family, pattern, cores)
}

// Aggregate buckets the records by (family, access pattern, core count) and computes the
// per-bucket statistics at the given confidence level.
//
// A record whose algorithm resolves to several families contributes its samples to every one of
// them; when several records land in the same bucket their sample sets are merged before any
// statistics are computed.  Records with unknown algorithm names are skipped with a diagnostic.
func Aggregate(records []TimingRecord, confidence float64) (StatSet, error) {
	if !(confidence > 0 && confidence < 1) {
		return nil, fmt.Errorf("confidence level must be in (0,1): %v", confidence)
	}

	buckets := make(map[Key][]float64)
	for _, r := range records {
		families := FamiliesOf(r.Algorithm)
		if families == nil {
			common.Log.Warningf("%v: %s, row skipped", ErrUnknownAlgorithm, r.Algorithm)
			continue
		}
		for _, f := range families {
			k := Key{f, r.Pattern, r.Cores}
			buckets[k] = append(buckets[k], r.Samples...)
		}
	}

	set := make(StatSet, len(buckets))
	for k, samples := range buckets {
		avg, err := stats.Mean(samples)
		if err != nil {
			return nil, fmt.Errorf("%w: family %s, pattern %s, %d cores",
				ErrEmptyBucket, k.Family, k.Pattern, k.Cores)
		}
		sigma, err := stats.StandardDeviationPopulation(samples)
		if err != nil {
			return nil, fmt.Errorf("%w: family %s, pattern %s, %d cores",
				ErrEmptyBucket, k.Family, k.Pattern, k.Cores)
		}
		lower, upper := ConfidenceBounds(sigma, len(samples), confidence)
		set[k] = &Stat{
			N:       len(samples),
			Average: avg,
			Lower:   lower,
			Upper:   upper,
		}
	}
	return set, nil
}

// ConfidenceBounds computes the error bounds used on the runtime charts: a chi-squared interval
// on the population standard deviation sigma of n samples,
//
//   lower = sigma * sqrt(n / chi2inv(1-alpha/2, n))
//   upper = sigma * sqrt(n / chi2inv(alpha/2, n))
//
// with alpha = 1 - confidence.  Note df = n, not n-1; the established baseline results were
// produced with this parameterization and comparability matters more than the textbook choice.
func ConfidenceBounds(sigma float64, n int, confidence float64) (lower, upper float64) {
	alpha := 1.0 - confidence
	dist := distuv.ChiSquared{K: float64(n)}
	lower = sigma * math.Sqrt(float64(n)/dist.Quantile(1.0-alpha/2.0))
	upper = sigma * math.Sqrt(float64(n)/dist.Quantile(alpha/2.0))
	return
}
