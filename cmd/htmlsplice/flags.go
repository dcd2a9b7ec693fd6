package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-htmlsplice/internal/watch"
)

// errHelp reports that -h was given and usage was printed.
var errHelp = errors.New("help requested")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	root    string
	locale  string
	quiet   bool
	verbose bool
}

// buildFlags holds flags for the build command.
type buildFlags struct {
	common commonFlags
}

// watchFlags holds flags for the watch command.
type watchFlags struct {
	common   commonFlags
	debounce time.Duration
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.root, "root", "r", "", "site directory (default: current directory)")
	fs.StringVar(&f.locale, "locale", "", "date locale, e.g. fr-FR, en-GB")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// newBuildFlagSet registers build flags into f.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	return fs
}

// newWatchFlagSet registers watch flags into f.
func newWatchFlagSet(f *watchFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	fs.DurationVar(&f.debounce, "debounce", watch.DefaultDebounce, "quiet period before rebuilding")
	return fs
}

// parseBuildFlags parses build command flags.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printBuildUsage(stderr) }

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseWatchFlags parses watch command flags.
func parseWatchFlags(args []string, stderr io.Writer) (*watchFlags, error) {
	f := &watchFlags{}
	fs := newWatchFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printWatchUsage(stderr) }

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if f.debounce <= 0 {
		return nil, fmt.Errorf("%w: --debounce must be positive, got %s", ErrUsage, f.debounce)
	}
	return f, nil
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return nil
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// newDoctorFlagSet registers doctor flags into f.
func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	return fs
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, stderr io.Writer) (*doctorFlags, error) {
	f := &doctorFlags{}
	fs := newDoctorFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printDoctorUsage(stderr) }

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}
