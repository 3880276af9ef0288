package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpages [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build stale pages (default)")
	fmt.Fprintln(w, "  info       Show plugins, converters and browser status")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpages help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpages [build] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build every page whose source, target or template changed.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Project:")
	fmt.Fprintln(w, "  -p, --path <dir>          Base path (default: working directory)")
	fmt.Fprintln(w, "  -i, --input <dir>         Source directory (default: <base>/pages)")
	fmt.Fprintln(w, "  -o, --output <dir>        Target directory (default: working directory)")
	fmt.Fprintln(w, "  -t, --template <file>     Page template (default: <base>/templates/page.html)")
	fmt.Fprintln(w, "      --config <file>       Config file (default: <base>/config.toml)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build:")
	fmt.Fprintln(w, "  -a, --all                 Rebuild all pages")
	fmt.Fprintln(w, "  -d, --draft               Render draft pages in full")
	fmt.Fprintln(w, "  -c, --continuous          Keep running and rebuild on changes")
	fmt.Fprintln(w, "  -r, --reformat            Rewrite sources in normalized form")
	fmt.Fprintln(w, "      --target <s>          Target format: html, latex")
	fmt.Fprintln(w, "      --pdf                 Also export HTML pages to PDF (needs Chrome)")
	fmt.Fprintln(w, "      --pandoc              Convert with the pandoc binary")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -l, --log                 Write the report to <base>/mdpages.log")
	fmt.Fprintln(w, "  -q, --quiet               Only show pages with errors")
	fmt.Fprintln(w, "  -v, --verbose             Also show info messages and statistics")
	fmt.Fprintln(w, "      --no-color            Disable colored output")
	fmt.Fprintln(w, "      --metrics-file <file> Write Prometheus metrics to a file")
}

// printInfoUsage prints usage for the info command.
func printInfoUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpages info [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show registered plugins, converter backends and browser status.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Output as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "info":
		printInfoUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdpages version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdpages help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
