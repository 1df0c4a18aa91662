package best

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	. "lbmreport/command"
	"lbmreport/runtimes"
)

type BestCommand struct /* implements AnalysisCommand */ {
	SharedArgs
	ByEfficiency bool
	Fmt          string

	// Synthesized and other
	printFields []string
	printOpts   *FormatOptions
}

func (_ *BestCommand) Summary() []string {
	return []string{
		"Rank the algorithm families by their best access pattern at the",
		"maximum core count.  The first row is the globally best",
		"configuration, the second the runner-up.",
	}
}

func (bc *BestCommand) Add(fs *flag.FlagSet) {
	bc.SharedArgs.Add(fs)
	fs.BoolVar(&bc.ByEfficiency, "by-efficiency", false,
		"Rank by parallel efficiency instead of speedup")
	fs.StringVar(&bc.Fmt, "fmt", "",
		"Select `field,...` and format for the output [default: try -fmt=help]")
}

func (bc *BestCommand) Validate() error {
	var e1, e2 error
	e1 = bc.SharedArgs.Validate()
	var others map[string]bool
	bc.printFields, others, e2 = ParseFormatSpec(bestDefaultFields, bc.Fmt, bestFormatters, bestAliases)
	if e2 == nil && len(bc.printFields) == 0 {
		e2 = errors.New("No output fields were selected in format string")
	}
	bc.printOpts = StandardFormatOptions(others, DefaultFixed)

	return errors.Join(e1, e2)
}

func (bc *BestCommand) Perform(
	out io.Writer,
	mode runtimes.Mode,
	records []runtimes.TimingRecord,
	ticks []int,
) error {
	ranked, maxTick, err := RankRecords(records, ticks, mode, bc.ByEfficiency)
	if err != nil {
		return err
	}

	rows := make([]bestRow, len(ranked))
	for i, r := range ranked {
		rows[i] = bestRow{i + 1, mode, maxTick, r}
	}

	FormatData(out, bc.printFields, bestFormatters, bc.printOpts, rows, bestCtx(false))
	return nil
}

// RankRecords aggregates, computes scaling metrics for every access pattern, and ranks the
// family winners at the maximum core tick.  Shared with the chart command, which renders the
// top-ranked configurations.
func RankRecords(
	records []runtimes.TimingRecord,
	ticks []int,
	mode runtimes.Mode,
	byEfficiency bool,
) ([]runtimes.RankedConfig, int, error) {
	if len(ticks) == 0 {
		return nil, 0, fmt.Errorf("%w: no core ticks", runtimes.ErrEmptyBucket)
	}
	set, err := runtimes.Aggregate(records, runtimes.DefaultConfidence)
	if err != nil {
		return nil, 0, err
	}
	metricsByPattern := make(map[string]runtimes.MetricSet, len(runtimes.AccessPatterns))
	for _, pattern := range runtimes.AccessPatterns {
		metrics, err := runtimes.ComputeScaling(set, pattern, runtimes.Families, ticks, mode)
		if err != nil {
			return nil, 0, err
		}
		metricsByPattern[pattern] = metrics
	}
	maxTick := ticks[len(ticks)-1]
	ranked, err := runtimes.Rank(
		metricsByPattern, runtimes.Families, runtimes.AccessPatterns, maxTick, byEfficiency)
	if err != nil {
		return nil, 0, err
	}
	return ranked, maxTick, nil
}

func (bc *BestCommand) MaybeFormatHelp() *FormatHelp {
	return StandardFormatHelp(bc.Fmt, bestHelp, bestFormatters, bestAliases, bestDefaultFields)
}

const bestHelp = `
best
  Pick each family's best access pattern at the maximum core count and rank
  the winners by speedup (or efficiency with -by-efficiency).
`

const bestDefaultFields = "rank,mode,family,pattern,cores,speedup,efficiency"

// MT: Constant after initialization; immutable
var bestAliases = map[string][]string{
	"all": []string{"rank", "mode", "family", "pattern", "cores", "speedup", "efficiency"},
}

type bestRow struct {
	rank    int
	mode    runtimes.Mode
	maxTick int
	config  runtimes.RankedConfig
}

type bestCtx bool

// MT: Constant after initialization; immutable
var bestFormatters = map[string]Formatter[bestRow, bestCtx]{
	"rank": {
		Fmt: func(d bestRow, _ bestCtx) string {
			return fmt.Sprint(d.rank)
		},
		Help: "Position in the ranking (1 is best)",
	},
	"mode": {
		Fmt: func(d bestRow, _ bestCtx) string {
			return d.mode.String()
		},
		Help: "Scaling mode (strong or weak)",
	},
	"family": {
		Fmt: func(d bestRow, _ bestCtx) string {
			return d.config.Family
		},
		Help: "Algorithm family name",
	},
	"pattern": {
		Fmt: func(d bestRow, _ bestCtx) string {
			return d.config.Pattern
		},
		Help: "Winning memory access pattern for the family",
	},
	"cores": {
		Fmt: func(d bestRow, _ bestCtx) string {
			return fmt.Sprint(d.maxTick)
		},
		Help: "Core count of the comparison (the maximum tick)",
	},
	"speedup": {
		Fmt: func(d bestRow, _ bestCtx) string {
			return strconv.FormatFloat(d.config.Metric.Speedup, 'f', 4, 64)
		},
		Help: "Speedup at the maximum core count",
	},
	"efficiency": {
		Fmt: func(d bestRow, _ bestCtx) string {
			return strconv.FormatFloat(d.config.Metric.Efficiency, 'f', 4, 64)
		},
		Help: "Parallel efficiency at the maximum core count",
	},
}
