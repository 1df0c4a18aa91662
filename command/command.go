package command

import (
	"flag"
	"io"

	"lbmreport/runtimes"
)

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// Represents an lbmreport command: stats, scaling, best, etc

type Command interface {
	// Add all arguments including shared arguments
	Add(fs *flag.FlagSet)

	// One-line-per-string summary for the -h output
	Summary() []string

	// Validate all arguments including shared arguments
	Validate() error
}

// Commands that analyze timing records.  The driver loads the records and computes the canonical
// core ticks for each selected scaling mode before calling Perform, once per mode.
type AnalysisCommand interface {
	Command

	// Retrieve shared arguments
	SharedFlags() *SharedArgs

	Perform(out io.Writer, mode runtimes.Mode, records []runtimes.TimingRecord, ticks []int) error
}

// Commands that handle their own input (resort, flow).
type StandaloneCommand interface {
	Command

	Perform(out io.Writer) error
}

type SetRestArgumentsAPI interface {
	SetRestArguments(args []string)
}

type FormatHelpAPI interface {
	// If the command accepts a -fmt argument and the value of that argument is "help", return a
	// non-nil object here with formatter help.
	MaybeFormatHelp() *FormatHelp
}
