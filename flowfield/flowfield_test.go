package flowfield

import (
	"errors"
	"math"
	"strings"
	"testing"

	"lbmreport/runtimes"
)

func TestParseField(t *testing.T) {
	input := `time_step,x,y,u_x,u_y,density
0,0,0,0.0,0.0,1.0
0,1,0,0.0,0.0,1.0
0,0,1,0.0,0.0,1.0
0,1,1,0.0,0.0,1.0
5,0,0,0.3,0.4,1.2
5,1,0,0.0,0.0,0.9
5,0,1,0.1,0.0,1.0
5,1,1,0.0,0.2,1.1
`
	field, err := ParseField(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	// Only the final time step is kept.
	if field.TimeStep != 5 {
		t.Fatalf("Got time step %d wanted 5", field.TimeStep)
	}
	if field.Velocity.Width != 2 || field.Velocity.Height != 2 {
		t.Fatalf("Got %dx%d wanted 2x2", field.Velocity.Width, field.Velocity.Height)
	}

	// Velocity magnitude sqrt(0.3^2 + 0.4^2) = 0.5.
	if v := field.Velocity.At(0, 0); math.Abs(v-0.5) > 1e-15 {
		t.Fatalf("Got velocity %v wanted 0.5", v)
	}
	if v := field.Velocity.At(1, 0); v != 0 {
		t.Fatalf("Got velocity %v wanted 0", v)
	}

	// Pressure is density/3.
	if p := field.Pressure.At(0, 0); math.Abs(p-0.4) > 1e-15 {
		t.Fatalf("Got pressure %v wanted 0.4", p)
	}

	lo, hi := field.Pressure.MinMax()
	if math.Abs(lo-0.3) > 1e-15 || math.Abs(hi-0.4) > 1e-15 {
		t.Fatalf("Got range (%v,%v) wanted (0.3,0.4)", lo, hi)
	}
}

// Lattice coordinates need not start at the origin; the grid is offset-relative.
func TestParseFieldOffset(t *testing.T) {
	input := `time_step,x,y,u_x,u_y,density
0,10,20,0.0,0.1,1.0
0,11,20,0.2,0.0,1.0
`
	field, err := ParseField(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if field.Velocity.MinX != 10 || field.Velocity.MinY != 20 {
		t.Fatalf("Got origin (%d,%d) wanted (10,20)", field.Velocity.MinX, field.Velocity.MinY)
	}
	if field.Velocity.Width != 2 || field.Velocity.Height != 1 {
		t.Fatalf("Got %dx%d wanted 2x1", field.Velocity.Width, field.Velocity.Height)
	}
	if v := field.Velocity.At(1, 0); math.Abs(v-0.2) > 1e-15 {
		t.Fatalf("Got velocity %v wanted 0.2", v)
	}
}

func TestParseFieldMalformed(t *testing.T) {
	inputs := []string{
		// Header only
		"time_step,x,y,u_x,u_y,density\n",
		// Too few columns
		"h\n5,0,0,0.1\n",
		// Unparseable coordinate
		"h1,h2,h3,h4,h5,h6\n5,a,0,0.1,0.1,1.0\n",
		// Unparseable density
		"h1,h2,h3,h4,h5,h6\n5,0,0,0.1,0.1,x\n",
	}
	for _, input := range inputs {
		_, err := ParseField(strings.NewReader(input))
		if !errors.Is(err, runtimes.ErrMalformedRecord) {
			t.Errorf("Got %v wanted ErrMalformedRecord for %q", err, input)
		}
	}
}
