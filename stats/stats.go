package stats

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	. "lbmreport/command"
	"lbmreport/common"
	"lbmreport/runtimes"
)

type StatsCommand struct /* implements AnalysisCommand */ {
	SharedArgs
	Confidence float64
	Fmt        string

	// Synthesized and other
	printFields []string
	printOpts   *FormatOptions

	confidenceStr string
}

func (_ *StatsCommand) Summary() []string {
	return []string{
		"Aggregate the timing samples per configuration and print averages",
		"with chi-squared confidence bounds on the standard deviation.",
	}
}

func (sc *StatsCommand) Add(fs *flag.FlagSet) {
	sc.SharedArgs.Add(fs)
	fs.StringVar(&sc.confidenceStr, "confidence", "",
		"Confidence `level` for the error bounds, in (0,1)\n"+
			"[default: ~/.lbmreport confidence, or 0.95]")
	fs.StringVar(&sc.Fmt, "fmt", "",
		"Select `field,...` and format for the output [default: try -fmt=help]")
}

func (sc *StatsCommand) Validate() error {
	var e1, e2, e3 error
	e1 = sc.SharedArgs.Validate()

	if sc.confidenceStr == "" {
		common.ApplyDefault(&sc.confidenceStr, common.AggregationConfidence)
	}
	if sc.confidenceStr == "" {
		sc.Confidence = runtimes.DefaultConfidence
	} else {
		sc.Confidence, e2 = strconv.ParseFloat(sc.confidenceStr, 64)
		if e2 == nil && !(sc.Confidence > 0 && sc.Confidence < 1) {
			e2 = fmt.Errorf("-confidence must be in (0,1): %s", sc.confidenceStr)
		}
	}

	var others map[string]bool
	sc.printFields, others, e3 = ParseFormatSpec(statsDefaultFields, sc.Fmt, statsFormatters, statsAliases)
	if e3 == nil && len(sc.printFields) == 0 {
		e3 = errors.New("No output fields were selected in format string")
	}
	sc.printOpts = StandardFormatOptions(others, DefaultFixed)

	return errors.Join(e1, e2, e3)
}

func (sc *StatsCommand) Perform(
	out io.Writer,
	mode runtimes.Mode,
	records []runtimes.TimingRecord,
	ticks []int,
) error {
	set, err := runtimes.Aggregate(records, sc.Confidence)
	if err != nil {
		return err
	}

	// Vocabulary order, ticks ascending: the same layout as the charts.
	rows := make([]statRow, 0, len(set))
	for _, pattern := range runtimes.AccessPatterns {
		for _, family := range runtimes.Families {
			for _, cores := range ticks {
				s, found := set[runtimes.Key{Family: family, Pattern: pattern, Cores: cores}]
				if !found {
					continue
				}
				rows = append(rows, statRow{mode, family, pattern, cores, s})
			}
		}
	}

	FormatData(out, sc.printFields, statsFormatters, sc.printOpts, rows, statsCtx(false))
	return nil
}

func (sc *StatsCommand) MaybeFormatHelp() *FormatHelp {
	return StandardFormatHelp(sc.Fmt, statsHelp, statsFormatters, statsAliases, statsDefaultFields)
}

const statsHelp = `
stats
  Aggregate timing samples by (family, access pattern, cores) and print the
  per-bucket sample count, average runtime, and confidence bounds.
`

const statsDefaultFields = "mode,family,pattern,cores,n,avg,lower,upper"

// MT: Constant after initialization; immutable
var statsAliases = map[string][]string{
	"all": []string{"mode", "family", "pattern", "cores", "n", "avg", "lower", "upper"},
}

type statRow struct {
	mode    runtimes.Mode
	family  string
	pattern string
	cores   int
	stat    *runtimes.Stat
}

type statsCtx bool

// MT: Constant after initialization; immutable
var statsFormatters = map[string]Formatter[statRow, statsCtx]{
	"mode": {
		Fmt: func(d statRow, _ statsCtx) string {
			return d.mode.String()
		},
		Help: "Scaling mode (strong or weak)",
	},
	"family": {
		Fmt: func(d statRow, _ statsCtx) string {
			return d.family
		},
		Help: "Algorithm family name",
	},
	"pattern": {
		Fmt: func(d statRow, _ statsCtx) string {
			return d.pattern
		},
		Help: "Memory access pattern name",
	},
	"cores": {
		Fmt: func(d statRow, _ statsCtx) string {
			return fmt.Sprint(d.cores)
		},
		Help: "Number of cores",
	},
	"n": {
		Fmt: func(d statRow, _ statsCtx) string {
			return fmt.Sprint(d.stat.N)
		},
		Help: "Number of samples in the bucket",
	},
	"avg": {
		Fmt: func(d statRow, _ statsCtx) string {
			return formatSeconds(d.stat.Average)
		},
		Help: "Average runtime (seconds)",
	},
	"lower": {
		Fmt: func(d statRow, _ statsCtx) string {
			return formatSeconds(d.stat.Lower)
		},
		Help: "Lower confidence bound on the standard deviation (seconds)",
	},
	"upper": {
		Fmt: func(d statRow, _ statsCtx) string {
			return formatSeconds(d.stat.Upper)
		},
		Help: "Upper confidence bound on the standard deviation (seconds)",
	},
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
