// Loading of flow-field snapshot files written by the simulation.
//
// A snapshot file is comma-separated with a header row; each data row is
//
//   time_step, x, y, u_x, u_y, density
//
// for one lattice node.  The file may hold several time steps; analysis and rendering use the
// final one.  From the raw node values we derive the two quantities that get charted: velocity
// magnitude sqrt(u_x^2 + u_y^2) and pressure density/3 (isothermal equation of state with
// c_s^2 = 1/3 in lattice units).

package flowfield

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"lbmreport/runtimes"
)

// A dense scalar field over the lattice.  Coordinates are zero-based relative to (MinX, MinY).
type Grid struct {
	MinX, MinY    int
	Width, Height int
	cells         []float64
}

func NewGrid(minX, minY, width, height int) *Grid {
	return &Grid{
		MinX:   minX,
		MinY:   minY,
		Width:  width,
		Height: height,
		cells:  make([]float64, width*height),
	}
}

func (g *Grid) At(x, y int) float64 {
	return g.cells[y*g.Width+x]
}

func (g *Grid) Set(x, y int, v float64) {
	g.cells[y*g.Width+x] = v
}

func (g *Grid) MinMax() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range g.cells {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return
}

// The last time step of a snapshot, as derived scalar fields.
type Field struct {
	TimeStep int
	Velocity *Grid
	Pressure *Grid
}

type node struct {
	t, x, y int
	ux, uy  float64
	density float64
}

func ReadField(filename string) (*Field, error) {
	input, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer input.Close()
	field, err := ParseField(bufio.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return field, nil
}

func ParseField(input io.Reader) (*Field, error) {
	rdr := csv.NewReader(input)
	rdr.FieldsPerRecord = -1

	nodes := make([]node, 0)
	minX, minY, maxX, maxY, maxT := 0, 0, 0, 0, 0
	line := 0
	for {
		fields, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", runtimes.ErrMalformedRecord, err)
		}
		line++
		if line == 1 {
			continue
		}
		if len(fields) < 6 {
			return nil, fmt.Errorf("%w: line %d: expected 6 columns, got %d",
				runtimes.ErrMalformedRecord, line, len(fields))
		}
		var n node
		bad := ""
		if n.t, err = strconv.Atoi(fields[0]); err != nil {
			bad = "time step"
		} else if n.x, err = strconv.Atoi(fields[1]); err != nil {
			bad = "x coordinate"
		} else if n.y, err = strconv.Atoi(fields[2]); err != nil {
			bad = "y coordinate"
		} else if n.ux, err = strconv.ParseFloat(fields[3], 64); err != nil {
			bad = "x velocity"
		} else if n.uy, err = strconv.ParseFloat(fields[4], 64); err != nil {
			bad = "y velocity"
		} else if n.density, err = strconv.ParseFloat(fields[len(fields)-1], 64); err != nil {
			bad = "density"
		}
		if bad != "" {
			return nil, fmt.Errorf("%w: line %d: unparseable %s",
				runtimes.ErrMalformedRecord, line, bad)
		}
		if len(nodes) == 0 {
			minX, maxX = n.x, n.x
			minY, maxY = n.y, n.y
			maxT = n.t
		} else {
			minX = min(minX, n.x)
			maxX = max(maxX, n.x)
			minY = min(minY, n.y)
			maxY = max(maxY, n.y)
			maxT = max(maxT, n.t)
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: no data rows", runtimes.ErrMalformedRecord)
	}

	width := maxX - minX + 1
	height := maxY - minY + 1
	velocity := NewGrid(minX, minY, width, height)
	pressure := NewGrid(minX, minY, width, height)
	for _, n := range nodes {
		if n.t != maxT {
			continue
		}
		velocity.Set(n.x-minX, n.y-minY, math.Sqrt(n.ux*n.ux+n.uy*n.uy))
		pressure.Set(n.x-minX, n.y-minY, n.density/3.0)
	}
	return &Field{TimeStep: maxT, Velocity: velocity, Pressure: pressure}, nil
}
