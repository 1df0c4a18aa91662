// `lbmreport` -- Analyze lattice-Boltzmann benchmark results
//
// Run `lbmreport help` for brief help.

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"

	"lbmreport/best"
	"lbmreport/chart"
	. "lbmreport/command"
	"lbmreport/common"
	"lbmreport/flow"
	"lbmreport/resort"
	"lbmreport/runtimes"
	"lbmreport/scaling"
	"lbmreport/stats"
	"lbmreport/status"
)

// v0.1.0 - initial version

const LbmreportVersion = "0.1.0"

func main() {
	err := lbmreport()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func lbmreport() error {
	anyCmd := commandLine()

	if dev, ok := anyCmd.(interface{ CpuProfileFile() string }); ok && dev.CpuProfileFile() != "" {
		f, err := os.Create(dev.CpuProfileFile())
		if err != nil {
			return fmt.Errorf("Failed to create profile\n%w", err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	switch cmd := anyCmd.(type) {
	case AnalysisCommand:
		return localAnalysis(cmd)
	case StandaloneCommand:
		return cmd.Perform(os.Stdout)
	default:
		return errors.New("NYI command")
	}
}

// Load the records for each selected scaling mode and hand them to the command along with the
// canonical core ticks.
func localAnalysis(cmd AnalysisCommand) error {
	args := cmd.SharedFlags()
	for _, mode := range args.Modes() {
		records := make([]runtimes.TimingRecord, 0)
		for _, filename := range args.SourceFiles(mode) {
			rs, err := runtimes.ReadRecords(filename)
			if err != nil {
				return err
			}
			records = append(records, rs...)
		}
		ticks := runtimes.CoreTicks(records)
		if err := cmd.Perform(os.Stdout, mode, records, ticks); err != nil {
			return err
		}
	}
	return nil
}

func commandLine() Command {
	out := flag.CommandLine.Output()

	if len(os.Args) < 2 {
		fmt.Fprintf(out, "Required operation missing, try `lbmreport help`\n")
		os.Exit(2)
	}

	var cmd Command
	var verb = os.Args[1]
	switch verb {
	case "help", "-h":
		fmt.Fprintf(out, "Usage: %s command [options] [-- resultfile ...]\n", os.Args[0])
		fmt.Fprintf(out, "Commands:\n")
		fmt.Fprintf(out, "  best    - rank the best configurations at the maximum core count\n")
		fmt.Fprintf(out, "  chart   - render runtime, speedup and efficiency charts\n")
		fmt.Fprintf(out, "  flow    - render flow-field heatmaps\n")
		fmt.Fprintf(out, "  resort  - rewrite raw results files in readable form\n")
		fmt.Fprintf(out, "  scaling - print speedup and parallel efficiency\n")
		fmt.Fprintf(out, "  stats   - print aggregated runtimes with confidence bounds\n")
		fmt.Fprintf(out, "  version - print information about the program\n")
		fmt.Fprintf(out, "  help    - print this message\n")
		fmt.Fprintf(out, "Each command accepts -h to further explain options.\n")
		os.Exit(0)
	case "best":
		cmd = new(best.BestCommand)
	case "chart":
		cmd = new(chart.ChartCommand)
	case "flow":
		cmd = new(flow.FlowCommand)
	case "resort":
		cmd = new(resort.ResortCommand)
	case "scaling":
		cmd = new(scaling.ScalingCommand)
	case "stats":
		cmd = new(stats.StatsCommand)
	case "version":
		fmt.Printf("lbmreport version(%s)\n", LbmreportVersion)
		os.Exit(0)
	default:
		fmt.Fprintf(out, "Required operation missing, try `lbmreport help`\n")
		os.Exit(2)
	}

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cmd.Add(fs)

	fs.Usage = func() {
		restargs := ""
		if _, ok := cmd.(SetRestArgumentsAPI); ok {
			restargs = " [-- resultfile ...]"
		}
		fmt.Fprintf(
			out,
			"Usage: %s %s [options]%s\n\n",
			os.Args[0],
			os.Args[1],
			restargs,
		)
		for _, s := range cmd.Summary() {
			fmt.Fprintln(out, "  ", s)
		}
		fmt.Fprint(out, "\nOptions:\n\n")
		fs.PrintDefaults()
		if restargs != "" {
			fmt.Fprintf(out, "  resultfile ...\n    \tInput data files\n")
		}
	}
	fs.Parse(os.Args[2:])

	rest := fs.Args()
	if len(rest) > 0 {
		if raCmd, ok := cmd.(SetRestArgumentsAPI); ok {
			raCmd.SetRestArguments(rest)
		} else {
			fmt.Fprintf(out, "Rest arguments not accepted by `%s`.\n", verb)
			os.Exit(2)
		}
	}

	if fhCmd, ok := cmd.(FormatHelpAPI); ok {
		if h := fhCmd.MaybeFormatHelp(); h != nil {
			PrintFormatHelp(out, h)
			os.Exit(0)
		}
	}

	err := cmd.Validate()
	if err != nil {
		fmt.Fprintf(out, "Bad arguments, try -h\n%v\n", err.Error())
		os.Exit(2)
	}

	if vCmd, ok := cmd.(interface{ VerboseFlag() bool }); ok && vCmd.VerboseFlag() {
		common.Log.LowerLevelTo(status.LogLevelInfo)
	}

	return cmd
}
