package command

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path"
	"strings"

	"lbmreport/common"
	"lbmreport/runtimes"
)

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// DevArgs are for development and their inclusion can be controlled with the devArgs setting,
// below.

type DevArgs struct {
	CpuProfile string
}

const devArgs = true

func (d *DevArgs) CpuProfileFile() string {
	return d.CpuProfile
}

func (d *DevArgs) Add(fs *flag.FlagSet) {
	if devArgs {
		fs.StringVar(&d.CpuProfile, "cpuprofile", "",
			"(Development) write cpu profile to `filename`")
	}
}

func (d *DevArgs) Validate() error {
	return nil
}

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// -v / -verbose

type VerboseArgs struct {
	Verbose bool
}

func (va *VerboseArgs) Add(fs *flag.FlagSet) {
	fs.BoolVar(&va.Verbose, "v", false, "Print verbose diagnostics to stderr")
	fs.BoolVar(&va.Verbose, "verbose", false, "Print verbose diagnostics to stderr")
}

func (va *VerboseArgs) Validate() error {
	return nil
}

func (va *VerboseArgs) VerboseFlag() bool {
	return va.Verbose
}

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// Handle -data-dir

type DataDirArgs struct {
	DataDir string
}

func (dd *DataDirArgs) Add(fs *flag.FlagSet) {
	fs.StringVar(&dd.DataDir, "data-dir", "",
		"Select the `directory` holding the benchmark result files\n"+
			"[default: ~/.lbmreport data-dir, or $LBMREPORT_DATA, or .]")
}

func (dd *DataDirArgs) Validate() error {
	if dd.DataDir == "" {
		common.ApplyDefault(&dd.DataDir, common.DataSourceDataDir)
	}
	if dd.DataDir == "" {
		dd.DataDir = os.Getenv("LBMREPORT_DATA")
	}
	if dd.DataDir == "" {
		dd.DataDir = "."
	}
	dd.DataDir = path.Clean(dd.DataDir)
	return nil
}

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// SourceArgs pertain to locating the timing result files.  Explicit files on the command line
// (after --) override the per-mode files in the data directory.

type SourceArgs struct {
	DataDirArgs
	DataFiles []string
}

func (s *SourceArgs) Add(fs *flag.FlagSet) {
	s.DataDirArgs.Add(fs)
}

func (s *SourceArgs) SetRestArguments(args []string) {
	s.DataFiles = args
}

func (s *SourceArgs) Validate() error {
	if len(s.DataFiles) > 0 {
		for i := 0; i < len(s.DataFiles); i++ {
			s.DataFiles[i] = path.Clean(s.DataFiles[i])
		}
		return nil
	}
	return s.DataDirArgs.Validate()
}

// ModeFile is the conventional name of the results file for a scaling mode, under the data
// directory.
func (s *SourceArgs) ModeFile(mode runtimes.Mode) string {
	return path.Join(s.DataDir, mode.String()+"_scaling_results.csv")
}

// SourceFiles resolves the input file list for one mode: the explicit files if there are any,
// otherwise the mode's conventional file.
func (s *SourceArgs) SourceFiles(mode runtimes.Mode) []string {
	if len(s.DataFiles) > 0 {
		return s.DataFiles
	}
	return []string{s.ModeFile(mode)}
}

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// Scaling mode selection.  The two modes read different results files and use different speedup
// formulas; strong is the default when neither flag is given.

type ModeArgs struct {
	Weak   bool
	Strong bool
}

func (ma *ModeArgs) Add(fs *flag.FlagSet) {
	fs.BoolVar(&ma.Weak, "weak", false, "Analyze the weak scaling results")
	fs.BoolVar(&ma.Strong, "strong", false, "Analyze the strong scaling results [default]")
}

func (ma *ModeArgs) Validate() error {
	if !ma.Weak && !ma.Strong {
		ma.Strong = true
	}
	return nil
}

// Modes returns the selected modes, strong first.
func (ma *ModeArgs) Modes() []runtimes.Mode {
	ms := make([]runtimes.Mode, 0, 2)
	if ma.Strong {
		ms = append(ms, runtimes.StrongScaling)
	}
	if ma.Weak {
		ms = append(ms, runtimes.WeakScaling)
	}
	return ms
}

// Mode returns the single selected mode and errors out if both were requested.
func (ma *ModeArgs) Mode() (runtimes.Mode, error) {
	if ma.Weak && ma.Strong {
		return 0, fmt.Errorf("At most one of -weak and -strong")
	}
	if ma.Weak {
		return runtimes.WeakScaling, nil
	}
	return runtimes.StrongScaling, nil
}

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// Shared for all the analysis commands.

type SharedArgs struct {
	DevArgs
	VerboseArgs
	SourceArgs
	ModeArgs
}

func (sa *SharedArgs) SharedFlags() *SharedArgs {
	return sa
}

func (s *SharedArgs) Add(fs *flag.FlagSet) {
	s.DevArgs.Add(fs)
	s.VerboseArgs.Add(fs)
	s.SourceArgs.Add(fs)
	s.ModeArgs.Add(fs)
}

func (s *SharedArgs) Validate() error {
	return errors.Join(
		s.DevArgs.Validate(),
		s.VerboseArgs.Validate(),
		s.SourceArgs.Validate(),
		s.ModeArgs.Validate(),
	)
}

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// Repeatable arguments.

type RepeatableString struct {
	xs *[]string
}

func NewRepeatableString(xs *[]string) *RepeatableString {
	return &RepeatableString{xs}
}

func (rs *RepeatableString) String() string {
	if rs == nil || rs.xs == nil {
		return ""
	}
	return strings.Join(*rs.xs, ",")
}

func (rs *RepeatableString) Set(s string) error {
	if *rs.xs == nil {
		*rs.xs = []string{s}
	} else {
		*rs.xs = append(*rs.xs, s)
	}
	return nil
}
