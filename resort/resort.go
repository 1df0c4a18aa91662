package resort

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	. "lbmreport/command"
	"lbmreport/common"
	"lbmreport/runtimes"
)

type ResortCommand struct /* implements StandaloneCommand */ {
	DevArgs
	VerboseArgs
	SourceArgs
	ModeArgs
	Stdout bool
}

func (_ *ResortCommand) Summary() []string {
	return []string{
		"Rewrite raw per-trial results files in the \"readable\" wide form:",
		"one row per configuration with all trial samples as columns.",
	}
}

func (rc *ResortCommand) Add(fs *flag.FlagSet) {
	rc.DevArgs.Add(fs)
	rc.VerboseArgs.Add(fs)
	rc.SourceArgs.Add(fs)
	rc.ModeArgs.Add(fs)
	fs.BoolVar(&rc.Stdout, "stdout", false,
		"Write the resorted data to stdout instead of a _readable.csv file")
}

func (rc *ResortCommand) Validate() error {
	return errors.Join(
		rc.DevArgs.Validate(),
		rc.VerboseArgs.Validate(),
		rc.SourceArgs.Validate(),
		rc.ModeArgs.Validate(),
	)
}

func (rc *ResortCommand) Perform(out io.Writer) error {
	for _, mode := range rc.Modes() {
		for _, filename := range rc.SourceFiles(mode) {
			records, err := runtimes.ReadRecords(filename)
			if err != nil {
				return err
			}
			if rc.Stdout {
				if err := runtimes.Resort(records, out); err != nil {
					return err
				}
				continue
			}
			outName := readableName(filename)
			output, err := os.Create(outName)
			if err != nil {
				return fmt.Errorf("Failed to create %s\n%w", outName, err)
			}
			err = runtimes.Resort(records, output)
			if e := output.Close(); err == nil {
				err = e
			}
			if err != nil {
				return err
			}
			common.Log.Infof("resorted %s into %s", filename, outName)
		}
	}
	return nil
}

func readableName(filename string) string {
	return strings.TrimSuffix(filename, ".csv") + "_readable.csv"
}
