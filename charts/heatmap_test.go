package charts

import (
	"bytes"
	"testing"

	"lbmreport/flowfield"
)

func TestWritePPM(t *testing.T) {
	g := flowfield.NewGrid(0, 0, 2, 1)
	g.Set(0, 0, 0.0)
	g.Set(1, 0, 1.0)

	var out bytes.Buffer
	if err := WritePPM(&out, g, 1); err != nil {
		t.Fatal(err)
	}
	b := out.Bytes()

	// 2x1 grid at 1 px per node plus the one-pixel border is 4x3.
	header := []byte("P6 4 3 255\n")
	if !bytes.HasPrefix(b, header) {
		t.Fatalf("Bad header %q", b[:min(len(b), 16)])
	}
	body := b[len(header):]
	if len(body) != 4*3*3 {
		t.Fatalf("Got %d body bytes wanted %d", len(body), 4*3*3)
	}

	// Second pixel row: border, low cell (darkest), high cell (lightest), border.
	row := body[4*3 : 8*3]
	wantRow := []byte{
		0, 0, 0,
		0, 0, 4,
		252, 253, 191,
		0, 0, 0,
	}
	if !bytes.Equal(row, wantRow) {
		t.Fatalf("Got row %v wanted %v", row, wantRow)
	}
}

// A constant grid has zero range and must not index outside the palette.
func TestWritePPMConstant(t *testing.T) {
	g := flowfield.NewGrid(0, 0, 3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g.Set(x, y, 7.5)
		}
	}
	var out bytes.Buffer
	if err := WritePPM(&out, g, 2); err != nil {
		t.Fatal(err)
	}
	if out.Len() == 0 {
		t.Fatal("No output")
	}
}

func TestTickXYs(t *testing.T) {
	xys := tickXYs([]int{1, 4, 16}, []float64{10, 5, 2})
	if len(xys) != 3 {
		t.Fatalf("Got %d points wanted 3", len(xys))
	}
	if xys[2].X != 16 || xys[2].Y != 2 {
		t.Fatalf("Got %v wanted (16,2)", xys[2])
	}
}
