package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if slices.Contains(os.Args, "-v") || slices.Contains(os.Args, "--verbose") {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// commands lists the subcommand names.
var commands = []string{"build", "watch", "doctor", "version", "help", "completion"}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	return slices.Contains(commands, arg)
}

// runMain dispatches to a subcommand and returns the process exit code.
// With no command, or with flags only, it runs build.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	var err error
	switch {
	case len(rest) == 0:
		err = runBuild(ctx, nil, env)
	case strings.HasPrefix(rest[0], "-"):
		err = runBuild(ctx, rest, env)
	case !isCommand(rest[0]):
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", rest[0])
		printUsage(env.Stderr)
		return ExitUsage
	case rest[0] == "version":
		fmt.Fprintf(env.Stdout, "htmlsplice %s\n", Version)
		return ExitSuccess
	case rest[0] == "help":
		return runHelp(rest[1:], env)
	case rest[0] == "doctor":
		return runDoctorCmd(rest[1:], env)
	case rest[0] == "completion":
		err = runCompletion(rest[1:], env)
	case rest[0] == "build":
		err = runBuild(ctx, rest[1:], env)
	case rest[0] == "watch":
		err = runWatch(ctx, rest[1:], env)
	}

	return report(err, env)
}

// report prints err with its hint and returns the matching exit code.
func report(err error, env *Environment) int {
	if err == nil || errors.Is(err, errHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}
