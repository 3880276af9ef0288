package main

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Match GOMAXPROCS to the container CPU quota before the worker pool is
	// sized from it. Error ignored: maxprocs.Set only fails if GOMAXPROCS env
	// is invalid, in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// Without a command name, the arguments are build flags.
func runMain(args []string, env *Environment) int {
	cmd, rest := "build", args[1:]
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		cmd, rest = rest[0], rest[1:]
	}

	switch cmd {
	case "build":
		return runBuildCmd(rest, env)
	case "info":
		return runInfoCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "mdpages %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}
