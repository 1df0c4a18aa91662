package flow

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"lbmreport/charts"
	. "lbmreport/command"
	"lbmreport/common"
	"lbmreport/flowfield"
)

type FlowCommand struct /* implements StandaloneCommand */ {
	DevArgs
	VerboseArgs
	DataDirArgs
	DataFiles []string
	Ppm       bool
	Px        int
	Field     string
	ImageDir  string
	Format    string
}

func (_ *FlowCommand) Summary() []string {
	return []string{
		"Render heatmaps of the velocity magnitude and pressure fields of",
		"the final time step of a flow snapshot.",
	}
}

func (fc *FlowCommand) Add(fs *flag.FlagSet) {
	fc.DevArgs.Add(fs)
	fc.VerboseArgs.Add(fs)
	fc.DataDirArgs.Add(fs)
	fs.BoolVar(&fc.Ppm, "ppm", false,
		"Write one field as a binary PPM to stdout instead of chart files")
	fs.IntVar(&fc.Px, "px", 4, "Pixels per lattice node for -ppm output")
	fs.StringVar(&fc.Field, "field", "velocity",
		"Field for -ppm output: velocity or pressure")
	fs.StringVar(&fc.ImageDir, "image-dir", "",
		"Write charts under this `directory`\n"+
			"[default: ~/.lbmreport image-dir, or images]")
	fs.StringVar(&fc.Format, "format", "",
		"Image format: pdf, png or svg [default: ~/.lbmreport format, or pdf]")
}

func (fc *FlowCommand) SetRestArguments(args []string) {
	fc.DataFiles = args
}

func (fc *FlowCommand) Validate() error {
	err := errors.Join(
		fc.DevArgs.Validate(),
		fc.VerboseArgs.Validate(),
		fc.DataDirArgs.Validate(),
	)
	if fc.Px < 1 {
		err = errors.Join(err, fmt.Errorf("-px must be at least 1: %d", fc.Px))
	}
	if fc.Field != "velocity" && fc.Field != "pressure" {
		err = errors.Join(err, fmt.Errorf("Unknown field %s", fc.Field))
	}

	if fc.ImageDir == "" {
		common.ApplyDefault(&fc.ImageDir, common.OutputImageDir)
	}
	if fc.ImageDir == "" {
		fc.ImageDir = "images"
	}
	fc.ImageDir = path.Clean(fc.ImageDir)

	if fc.Format == "" {
		common.ApplyDefault(&fc.Format, common.OutputFormat)
	}
	switch fc.Format {
	case "":
		fc.Format = "pdf"
	case "pdf", "png", "svg":
	default:
		err = errors.Join(err, fmt.Errorf("Unknown image format %s", fc.Format))
	}
	return err
}

func (fc *FlowCommand) Perform(out io.Writer) error {
	files := fc.DataFiles
	if len(files) == 0 {
		files = []string{path.Join(fc.DataDir, "results.csv")}
	}
	for _, filename := range files {
		field, err := flowfield.ReadField(filename)
		if err != nil {
			return err
		}
		common.Log.Infof("%s: rendering time step %d", filename, field.TimeStep)
		if fc.Ppm {
			grid := field.Velocity
			if fc.Field == "pressure" {
				grid = field.Pressure
			}
			if err := charts.WritePPM(out, grid, fc.Px); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(path.Join(fc.ImageDir, "flow"), 0o755); err != nil {
			return err
		}
		base := strings.TrimSuffix(path.Base(filename), ".csv")
		velFile := path.Join(fc.ImageDir, "flow", base+"_velocity."+fc.Format)
		title := fmt.Sprintf("Velocity magnitude, time step %d", field.TimeStep)
		if err := charts.HeatMap(velFile, title, field.Velocity); err != nil {
			return err
		}
		pressFile := path.Join(fc.ImageDir, "flow", base+"_pressure."+fc.Format)
		title = fmt.Sprintf("Pressure, time step %d", field.TimeStep)
		if err := charts.HeatMap(pressFile, title, field.Pressure); err != nil {
			return err
		}
	}
	return nil
}
