package chart

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path"

	"lbmreport/best"
	"lbmreport/charts"
	. "lbmreport/command"
	"lbmreport/common"
	"lbmreport/runtimes"
)

type ChartCommand struct /* implements AnalysisCommand */ {
	SharedArgs
	ImageDir string
	Format   string
}

func (_ *ChartCommand) Summary() []string {
	return []string{
		"Render the full chart set for the selected scaling mode: runtimes",
		"with error bars, speedup, efficiency, and the best-configuration",
		"comparison.",
	}
}

func (cc *ChartCommand) Add(fs *flag.FlagSet) {
	cc.SharedArgs.Add(fs)
	fs.StringVar(&cc.ImageDir, "image-dir", "",
		"Write charts under this `directory`\n"+
			"[default: ~/.lbmreport image-dir, or images]")
	fs.StringVar(&cc.Format, "format", "",
		"Image format: pdf, png or svg [default: ~/.lbmreport format, or pdf]")
}

func (cc *ChartCommand) Validate() error {
	err := cc.SharedArgs.Validate()

	if cc.ImageDir == "" {
		common.ApplyDefault(&cc.ImageDir, common.OutputImageDir)
	}
	if cc.ImageDir == "" {
		cc.ImageDir = "images"
	}
	cc.ImageDir = path.Clean(cc.ImageDir)

	if cc.Format == "" {
		common.ApplyDefault(&cc.Format, common.OutputFormat)
	}
	switch cc.Format {
	case "":
		cc.Format = "pdf"
	case "pdf", "png", "svg":
	default:
		err = errors.Join(err, fmt.Errorf("Unknown image format %s", cc.Format))
	}
	return err
}

func (cc *ChartCommand) Perform(
	_ io.Writer,
	mode runtimes.Mode,
	records []runtimes.TimingRecord,
	ticks []int,
) error {
	set, err := runtimes.Aggregate(records, runtimes.DefaultConfidence)
	if err != nil {
		return err
	}
	for _, sub := range []string{"runtimes", "speedup", "efficiency", "best_algorithms"} {
		if err := os.MkdirAll(path.Join(cc.ImageDir, sub), 0o755); err != nil {
			return err
		}
	}

	for _, pattern := range runtimes.AccessPatterns {
		if err := cc.runtimeChart(set, mode, pattern, ticks); err != nil {
			return err
		}
		metrics, err := runtimes.ComputeScaling(set, pattern, runtimes.Families, ticks, mode)
		if err != nil {
			return err
		}
		if err := cc.scalingCharts(metrics, mode, pattern, ticks); err != nil {
			return err
		}
	}
	return cc.bestCharts(records, mode, ticks)
}

func (cc *ChartCommand) chartFile(sub, name string) string {
	return path.Join(cc.ImageDir, sub, name+"."+cc.Format)
}

func (cc *ChartCommand) runtimeChart(
	set runtimes.StatSet,
	mode runtimes.Mode,
	pattern string,
	ticks []int,
) error {
	series := make([]charts.Series, 0, len(runtimes.Families))
	for _, family := range runtimes.Families {
		s := charts.Series{
			Label: runtimes.FamilyLabels[family],
			Y:     make([]float64, len(ticks)),
			Lower: make([]float64, len(ticks)),
			Upper: make([]float64, len(ticks)),
		}
		for i, cores := range ticks {
			stat, err := set.Get(family, pattern, cores)
			if err != nil {
				return err
			}
			s.Y[i] = stat.Average
			s.Lower[i] = stat.Lower
			s.Upper[i] = stat.Upper
		}
		series = append(series, s)
	}
	filename := cc.chartFile("runtimes", fmt.Sprintf("%s_%s", mode, pattern))
	title := fmt.Sprintf("Runtimes, %s scaling, %s access", mode, pattern)
	common.Log.Infof("writing %s", filename)
	return charts.Runtime(filename, title, ticks, series)
}

func (cc *ChartCommand) scalingCharts(
	metrics runtimes.MetricSet,
	mode runtimes.Mode,
	pattern string,
	ticks []int,
) error {
	speedups := make([]charts.Series, 0, len(runtimes.Families))
	efficiencies := make([]charts.Series, 0, len(runtimes.Families))
	for _, family := range runtimes.Families {
		sp := charts.Series{Label: runtimes.FamilyLabels[family], Y: make([]float64, len(ticks))}
		ef := charts.Series{Label: runtimes.FamilyLabels[family], Y: make([]float64, len(ticks))}
		for i, cores := range ticks {
			m := metrics[runtimes.Key{Family: family, Pattern: pattern, Cores: cores}]
			sp.Y[i] = m.Speedup
			ef.Y[i] = m.Efficiency
		}
		speedups = append(speedups, sp)
		efficiencies = append(efficiencies, ef)
	}

	filename := cc.chartFile("speedup", fmt.Sprintf("%s_%s", mode, pattern))
	title := fmt.Sprintf("Speedup, %s scaling, %s access", mode, pattern)
	common.Log.Infof("writing %s", filename)
	if err := charts.Speedup(filename, title, ticks, speedups); err != nil {
		return err
	}

	filename = cc.chartFile("efficiency", fmt.Sprintf("%s_%s", mode, pattern))
	title = fmt.Sprintf("Efficiency, %s scaling, %s access", mode, pattern)
	common.Log.Infof("writing %s", filename)
	return charts.Efficiency(filename, title, ticks, efficiencies)
}

// The best-configuration comparison: the globally best and the runner-up, each rendered with
// its winning access pattern, in one speedup chart and one efficiency chart.
func (cc *ChartCommand) bestCharts(
	records []runtimes.TimingRecord,
	mode runtimes.Mode,
	ticks []int,
) error {
	ranked, _, err := best.RankRecords(records, ticks, mode, false)
	if err != nil {
		return err
	}
	if len(ranked) > 2 {
		ranked = ranked[:2]
	}

	set, err := runtimes.Aggregate(records, runtimes.DefaultConfidence)
	if err != nil {
		return err
	}
	speedups := make([]charts.Series, 0, len(ranked))
	efficiencies := make([]charts.Series, 0, len(ranked))
	for _, r := range ranked {
		metrics, err := runtimes.ComputeScaling(set, r.Pattern, []string{r.Family}, ticks, mode)
		if err != nil {
			return err
		}
		label := fmt.Sprintf("%s (%s)", runtimes.FamilyLabels[r.Family], r.Pattern)
		sp := charts.Series{Label: label, Y: make([]float64, len(ticks))}
		ef := charts.Series{Label: label, Y: make([]float64, len(ticks))}
		for i, cores := range ticks {
			m := metrics[runtimes.Key{Family: r.Family, Pattern: r.Pattern, Cores: cores}]
			sp.Y[i] = m.Speedup
			ef.Y[i] = m.Efficiency
		}
		speedups = append(speedups, sp)
		efficiencies = append(efficiencies, ef)
	}

	filename := cc.chartFile("best_algorithms", fmt.Sprintf("%s_speedup", mode))
	title := fmt.Sprintf("Best configurations, %s scaling speedup", mode)
	common.Log.Infof("writing %s", filename)
	if err := charts.Speedup(filename, title, ticks, speedups); err != nil {
		return err
	}

	filename = cc.chartFile("best_algorithms", fmt.Sprintf("%s_efficiency", mode))
	title = fmt.Sprintf("Best configurations, %s scaling efficiency", mode)
	common.Log.Infof("writing %s", filename)
	return charts.Efficiency(filename, title, ticks, efficiencies)
}
