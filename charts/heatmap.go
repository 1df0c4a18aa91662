// Heatmap rendering of flow-field scalar grids.  Two output paths: a regular chart through the
// plotting library, and a raw binary PPM stream for quick inspection in a pipeline, eg
//
//   lbmreport flow -ppm flow_result.csv | pnmtopng > flow.png
//
// (Without pnmtopng, save the ppm and view it in emacs and in image viewers.)

package charts

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"lbmreport/flowfield"
)

// fieldGrid adapts a flow-field grid to the plotter's grid interface.  X and Y are the lattice
// coordinates of the original snapshot.
type fieldGrid struct {
	g *flowfield.Grid
}

func (fg fieldGrid) Dims() (c, r int)   { return fg.g.Width, fg.g.Height }
func (fg fieldGrid) Z(c, r int) float64 { return fg.g.At(c, r) }
func (fg fieldGrid) X(c int) float64    { return float64(fg.g.MinX + c) }
func (fg fieldGrid) Y(r int) float64    { return float64(fg.g.MinY + r) }

// HeatMap renders one scalar grid as a heatmap chart with the lattice coordinates on the axes.
func HeatMap(filename, title string, g *flowfield.Grid) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(fieldGrid{g}, palette.Heat(len(magma), 1))
	p.Add(hm)

	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

/* "magma" from https://waldyrious.net/viridis-palette-generator/ */
var (
	magma = [][]byte{
		[]byte{0, 0, 4},
		[]byte{7, 6, 28},
		[]byte{21, 14, 56},
		[]byte{41, 17, 90},
		[]byte{63, 15, 114},
		[]byte{86, 20, 125},
		[]byte{106, 28, 129},
		[]byte{128, 37, 130},
		[]byte{148, 44, 128},
		[]byte{171, 51, 124},
		[]byte{192, 58, 118},
		[]byte{214, 69, 108},
		[]byte{232, 83, 98},
		[]byte{244, 105, 92},
		[]byte{250, 129, 95},
		[]byte{253, 155, 107},
		[]byte{254, 180, 123},
		[]byte{254, 205, 144},
		[]byte{253, 229, 167},
		[]byte{252, 253, 191},
	}
	black = []byte{0, 0, 0}
)

// WritePPM writes the grid as a binary PPM (P6) with px*px pixels per lattice node and a
// one-pixel black border.  Values are mapped linearly onto the magma palette, low values dark.
func WritePPM(out io.Writer, g *flowfield.Grid, px int) error {
	lo, hi := g.MinMax()
	q := (hi - lo) / float64(len(magma)-1)

	realWidth := g.Width*px + 2
	realHeight := g.Height*px + 2
	if _, err := fmt.Fprintf(out, "P6 %d %d 255\n", realWidth, realHeight); err != nil {
		return err
	}
	for x := 0; x < realWidth; x++ {
		out.Write(black)
	}
	// Row 0 of the grid is the bottom of the lattice; PPM streams top to bottom.
	for y := g.Height - 1; y >= 0; y-- {
		for j := 0; j < px; j++ {
			out.Write(black)
			for x := 0; x < g.Width; x++ {
				c := magma[0]
				if q > 0 {
					c = magma[int(math.Floor((g.At(x, y)-lo)/q))]
				}
				for i := 0; i < px; i++ {
					if _, err := out.Write(c); err != nil {
						return err
					}
				}
			}
			out.Write(black)
		}
	}
	for x := 0; x < realWidth; x++ {
		out.Write(black)
	}
	return nil
}
