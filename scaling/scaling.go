package scaling

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	. "lbmreport/command"
	"lbmreport/runtimes"
)

type ScalingCommand struct /* implements AnalysisCommand */ {
	SharedArgs
	Fmt string

	// Synthesized and other
	printFields []string
	printOpts   *FormatOptions
}

func (_ *ScalingCommand) Summary() []string {
	return []string{
		"Compute speedup and parallel efficiency per configuration, relative",
		"to each family's baseline at the smallest core count.",
	}
}

func (cc *ScalingCommand) Add(fs *flag.FlagSet) {
	cc.SharedArgs.Add(fs)
	fs.StringVar(&cc.Fmt, "fmt", "",
		"Select `field,...` and format for the output [default: try -fmt=help]")
}

func (cc *ScalingCommand) Validate() error {
	var e1, e2 error
	e1 = cc.SharedArgs.Validate()
	var others map[string]bool
	cc.printFields, others, e2 = ParseFormatSpec(scalingDefaultFields, cc.Fmt, scalingFormatters, scalingAliases)
	if e2 == nil && len(cc.printFields) == 0 {
		e2 = errors.New("No output fields were selected in format string")
	}
	cc.printOpts = StandardFormatOptions(others, DefaultFixed)

	return errors.Join(e1, e2)
}

func (cc *ScalingCommand) Perform(
	out io.Writer,
	mode runtimes.Mode,
	records []runtimes.TimingRecord,
	ticks []int,
) error {
	set, err := runtimes.Aggregate(records, runtimes.DefaultConfidence)
	if err != nil {
		return err
	}

	rows := make([]scalingRow, 0)
	for _, pattern := range runtimes.AccessPatterns {
		metrics, err := runtimes.ComputeScaling(set, pattern, runtimes.Families, ticks, mode)
		if err != nil {
			return err
		}
		for _, family := range runtimes.Families {
			for _, cores := range ticks {
				m := metrics[runtimes.Key{Family: family, Pattern: pattern, Cores: cores}]
				rows = append(rows, scalingRow{mode, family, pattern, cores, m})
			}
		}
	}

	FormatData(out, cc.printFields, scalingFormatters, cc.printOpts, rows, scalingCtx(false))
	return nil
}

func (cc *ScalingCommand) MaybeFormatHelp() *FormatHelp {
	return StandardFormatHelp(cc.Fmt, scalingHelp, scalingFormatters, scalingAliases, scalingDefaultFields)
}

const scalingHelp = `
scaling
  Derive speedup and parallel efficiency from the aggregated averages.  The
  formulas differ by mode: weak speedup is cores * baseline/current, strong
  speedup is baseline/current; efficiency is speedup/cores in both.
`

const scalingDefaultFields = "mode,family,pattern,cores,speedup,efficiency"

// MT: Constant after initialization; immutable
var scalingAliases = map[string][]string{
	"all": []string{"mode", "family", "pattern", "cores", "speedup", "efficiency"},
}

type scalingRow struct {
	mode    runtimes.Mode
	family  string
	pattern string
	cores   int
	metric  runtimes.Metric
}

type scalingCtx bool

// MT: Constant after initialization; immutable
var scalingFormatters = map[string]Formatter[scalingRow, scalingCtx]{
	"mode": {
		Fmt: func(d scalingRow, _ scalingCtx) string {
			return d.mode.String()
		},
		Help: "Scaling mode (strong or weak)",
	},
	"family": {
		Fmt: func(d scalingRow, _ scalingCtx) string {
			return d.family
		},
		Help: "Algorithm family name",
	},
	"pattern": {
		Fmt: func(d scalingRow, _ scalingCtx) string {
			return d.pattern
		},
		Help: "Memory access pattern name",
	},
	"cores": {
		Fmt: func(d scalingRow, _ scalingCtx) string {
			return fmt.Sprint(d.cores)
		},
		Help: "Number of cores",
	},
	"speedup": {
		Fmt: func(d scalingRow, _ scalingCtx) string {
			return formatRatio(d.metric.Speedup)
		},
		Help: "Speedup relative to the family baseline",
	},
	"efficiency": {
		Fmt: func(d scalingRow, _ scalingCtx) string {
			return formatRatio(d.metric.Efficiency)
		},
		Help: "Parallel efficiency (speedup/cores)",
	},
}

func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
