// Chart rendering for the scaling analyses.  One chart per (scaling mode, access pattern), with
// the same composition as the established report figures: runtimes with confidence error bars on
// log-log axes, speedup against the ideal line, efficiency against the ideal constant 1.
//
// The output format follows the file extension; .pdf, .png and .svg all work.

package charts

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// One curve: a value per core tick, with optional error bounds (absolute distances below and
// above the value, same convention as the confidence bounds).
type Series struct {
	Label string
	Y     []float64
	Lower []float64
	Upper []float64
}

var seriesColors = []color.RGBA{
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, // red
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, // green
	{A: 0xff},                            // black
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff}, // olive
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, // blue
}

var seriesGlyphs = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.BoxGlyph{},
	draw.PyramidGlyph{},
	draw.CrossGlyph{},
	draw.RingGlyph{},
}

func seriesColor(i int) color.RGBA {
	return seriesColors[i%len(seriesColors)]
}

func seriesGlyph(i int) draw.GlyphDrawer {
	return seriesGlyphs[i%len(seriesGlyphs)]
}

// Runtime renders average runtimes per core count with confidence error bars, on log2/log10
// axes.
func Runtime(filename, title string, ticks []int, series []Series) error {
	p := newTicksPlot(title, "cores", "runtime [s]", ticks)
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	for i, s := range series {
		xys := tickXYs(ticks, s.Y)
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = seriesColor(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.Label, line)

		if s.Lower != nil && s.Upper != nil {
			bars, err := plotter.NewYErrorBars(errPoints{
				XYs:     xys,
				YErrors: tickYErrors(s.Lower, s.Upper),
			})
			if err != nil {
				return err
			}
			bars.Color = seriesColor(i)
			p.Add(bars)
		}
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

// Speedup renders speedup per core count together with the dashed ideal line speedup = cores.
func Speedup(filename, title string, ticks []int, series []Series) error {
	p := newTicksPlot(title, "cores", "speedup", ticks)
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	if err := addSeries(p, ticks, series); err != nil {
		return err
	}
	ideal := make([]float64, len(ticks))
	for i, t := range ticks {
		ideal[i] = float64(t)
	}
	if err := addIdeal(p, ticks, ideal); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

// Efficiency renders parallel efficiency per core count with the dashed ideal constant 1.
func Efficiency(filename, title string, ticks []int, series []Series) error {
	p := newTicksPlot(title, "cores", "efficiency", ticks)

	if err := addSeries(p, ticks, series); err != nil {
		return err
	}
	ideal := make([]float64, len(ticks))
	for i := range ticks {
		ideal[i] = 1.0
	}
	if err := addIdeal(p, ticks, ideal); err != nil {
		return err
	}
	p.Y.Min = 0
	p.Y.Max = max(p.Y.Max, 1.1)
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

func newTicksPlot(title, xlabel, ylabel string, ticks []int) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.X.Scale = plot.LogScale{}

	// The core counts are the canonical x axis; label every tick with its exact value.
	xTicks := make([]plot.Tick, len(ticks))
	for i, t := range ticks {
		xTicks[i] = plot.Tick{Value: float64(t), Label: fmt.Sprint(t)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = 1 * vg.Millimeter
	return p
}

func addSeries(p *plot.Plot, ticks []int, series []Series) error {
	for i, s := range series {
		xys := tickXYs(ticks, s.Y)
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = seriesColor(i)
		line.Width = vg.Points(1.5)

		points, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		points.GlyphStyle.Color = seriesColor(i)
		points.GlyphStyle.Shape = seriesGlyph(i)
		points.GlyphStyle.Radius = vg.Points(2.5)

		p.Add(line, points)
		p.Legend.Add(s.Label, line, points)
	}
	return nil
}

func addIdeal(p *plot.Plot, ticks []int, y []float64) error {
	line, err := plotter.NewLine(tickXYs(ticks, y))
	if err != nil {
		return err
	}
	line.Color = color.Black
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(line)
	p.Legend.Add("Ideal", line)
	return nil
}

func tickXYs(ticks []int, y []float64) plotter.XYs {
	xys := make(plotter.XYs, len(ticks))
	for i, t := range ticks {
		xys[i].X = float64(t)
		xys[i].Y = y[i]
	}
	return xys
}

func tickYErrors(lower, upper []float64) plotter.YErrors {
	errs := make(plotter.YErrors, len(lower))
	for i := range lower {
		errs[i].Low = lower[i]
		errs[i].High = upper[i]
	}
	return errs
}

type errPoints struct {
	plotter.XYs
	plotter.YErrors
}
