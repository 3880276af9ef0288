package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// buildFlags holds the build command flags.
type buildFlags struct {
	// Project layout
	path     string
	input    string
	output   string
	template string
	config   string

	// Build behavior
	all        bool
	draft      bool
	continuous bool
	reformat   bool
	target     string
	pdf        bool
	pandoc     bool
	workers    int

	// Output control
	log         bool
	verbose     bool
	quiet       bool
	noColor     bool
	metricsFile string
}

// addLayoutFlags adds project layout flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.StringVarP(&f.path, "path", "p", "", "project base path (default: working directory)")
	fs.StringVarP(&f.input, "input", "i", "", "source directory (default: <base>/pages)")
	fs.StringVarP(&f.output, "output", "o", "", "target directory (default: working directory)")
	fs.StringVarP(&f.template, "template", "t", "", "page template (default: <base>/templates/page.html)")
	fs.StringVar(&f.config, "config", "", "config file (default: config.toml in the base path)")
}

// addBehaviorFlags adds build behavior flags to a FlagSet.
func addBehaviorFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.BoolVarP(&f.all, "all", "a", false, "rebuild all pages, not only stale ones")
	fs.BoolVarP(&f.draft, "draft", "d", false, "render draft pages in full")
	fs.BoolVarP(&f.continuous, "continuous", "c", false, "keep running and rebuild on changes")
	fs.BoolVarP(&f.reformat, "reformat", "r", false, "rewrite sources in normalized form")
	fs.StringVar(&f.target, "target", "", "target format: html, latex")
	fs.BoolVar(&f.pdf, "pdf", false, "also export HTML pages to PDF")
	fs.BoolVar(&f.pandoc, "pandoc", false, "convert with the pandoc binary")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
}

// addOutputFlags adds output control flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.BoolVarP(&f.log, "log", "l", false, "write the report to mdpages.log in the base path")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "also show info messages and statistics")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show pages with errors")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
}

// parseBuildFlags parses build command flags. Positional arguments are
// rejected: the pages to build come from the input directory.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &buildFlags{}

	addLayoutFlags(fs, f)
	addBehaviorFlags(fs, f)
	addOutputFlags(fs, f)

	fs.Usage = func() { printBuildUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	if f.quiet && f.verbose {
		return nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return f, nil
}
