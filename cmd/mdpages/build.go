package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	mdpages "github.com/alnah/go-mdpages"
	"github.com/alnah/go-mdpages/internal/config"
	"github.com/alnah/go-mdpages/internal/hints"
	"github.com/alnah/go-mdpages/internal/metrics"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/report"
	"github.com/alnah/go-mdpages/internal/watch"
)

// buildSession is one run of the build command: a configured builder, the
// resolved input and where reports go.
type buildSession struct {
	flags    *buildFlags
	env      *Environment
	builder  *mdpages.Builder
	input    mdpages.Input
	out      io.Writer
	printer  report.Printer
	recorder *metrics.PrometheusRecorder
	logger   *slog.Logger
}

// runBuildCmd executes the build command and returns an exit code.
func runBuildCmd(args []string, env *Environment) int {
	flags, err := parseBuildFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	code, err := runBuild(ctx, flags, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return code
}

// runBuild builds the stale pages once and, in continuous mode, keeps
// rebuilding on changes until ctx is canceled.
func runBuild(ctx context.Context, flags *buildFlags, env *Environment) (int, error) {
	base := flags.path
	if base == "" {
		base = "."
	}

	cfg, err := loadConfig(base, flags.config)
	if err != nil {
		return ExitUsage, fmt.Errorf("loading config: %w", err)
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return ExitUsage, err
	}

	in, err := resolveInput(base, cfg, flags, env)
	if err != nil {
		return ExitUsage, err
	}

	s := &buildSession{
		flags:  flags,
		env:    env,
		input:  in,
		logger: newLogger(env.Stderr, flags.verbose),
	}

	var out io.Writer = env.Stdout
	if flags.log {
		f, err := os.Create(filepath.Join(base, cfg.Log)) // #nosec G304 -- log name validated as a bare file name
		if err != nil {
			return ExitIO, fmt.Errorf("%w: %v", ErrLogFile, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	s.out = out
	s.printer = report.Printer{
		Color:   env.Interactive && !flags.noColor && !flags.log,
		Verbose: flags.verbose,
	}

	opts := []mdpages.Option{mdpages.WithLogger(s.logger)}
	if flags.metricsFile != "" {
		s.recorder = metrics.NewPrometheusRecorder(nil)
		opts = append(opts, mdpages.WithRecorder(s.recorder))
	}
	if flags.pandoc {
		if pipeline.LookPandoc() == "" {
			return ExitUsage, ErrPandocNotFound
		}
		opts = append(opts, mdpages.WithConverter(pipeline.NewPandoc()))
	}
	s.builder, err = mdpages.NewBuilder(opts...)
	if err != nil {
		return ExitGeneral, err
	}

	code, err := s.buildOnce(ctx)
	if err != nil || !flags.continuous {
		return code, err
	}
	return s.watch(ctx)
}

// loadConfig loads the explicit config file, or the project config found in
// base, or the defaults.
func loadConfig(base, explicit string) (*config.Config, error) {
	if explicit != "" {
		return config.LoadConfig(explicit)
	}
	return config.Load(base)
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.input != "" {
		cfg.Input = flags.input
	}
	if flags.output != "" {
		cfg.Output = flags.output
	}
	if flags.template != "" {
		cfg.Template = flags.template
	}
	if flags.target != "" {
		cfg.Target = flags.target
	}
	if flags.draft {
		cfg.Draft = true
	}
	if flags.pdf {
		cfg.PDF = true
	}
	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}
}

// resolveInput turns the merged config into a build input. Config paths
// are relative to base; paths given as flags are relative to the working
// directory.
func resolveInput(base string, cfg *config.Config, flags *buildFlags, env *Environment) (mdpages.Input, error) {
	target, err := pipeline.ParseFormat(cfg.Target)
	if err != nil {
		return mdpages.Input{}, err
	}

	in := mdpages.Input{
		InputDir:     resolvePath(base, cfg.Input, flags.input != ""),
		OutputDir:    resolvePath(base, cfg.Output, flags.output != ""),
		TemplatePath: resolveTemplate(base, cfg, flags, target),
		Target:       target,
		RebuildAll:   flags.all,
		AbortOnDraft: !cfg.Draft,
		Reformat:     flags.reformat,
		PDF:          cfg.PDF,
		Workers:      cfg.Workers,
	}
	if env.Interactive && !flags.quiet && !flags.log && !flags.continuous {
		in.Progress = newProgressLine(env.Stderr, env.Width)
	}
	return in, in.Validate()
}

// resolvePath resolves a config path against base unless it came from a flag.
func resolvePath(base, value string, fromFlag bool) string {
	if fromFlag {
		return value
	}
	return config.Resolve(base, value)
}

// resolveTemplate resolves the template path. The default template is
// looked up with the target's extension, so a LaTeX build uses
// templates/page.tex.
func resolveTemplate(base string, cfg *config.Config, flags *buildFlags, target pipeline.Format) string {
	path := cfg.Template
	if path == config.DefaultTemplate && target != pipeline.FormatHTML {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + target.Extension()
	}
	return resolvePath(base, path, flags.template != "")
}

// buildOnce runs one build and prints its reports.
func (s *buildSession) buildOnce(ctx context.Context) (int, error) {
	result, err := s.builder.Build(ctx, s.input)
	if result != nil {
		s.printResult(result)
		if werr := s.writeMetrics(); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		return ExitGeneral, err
	}

	if result.MaxSeverity() >= report.Error {
		fmt.Fprintf(s.env.Stderr, "build failed%s\n", hints.ForFailedBuild(s.flags.verbose))
		return ExitGeneral, nil
	}
	return ExitSuccess, nil
}

// printResult prints the setup and page reports together, most severe
// first.
func (s *buildSession) printResult(result *mdpages.Result) {
	reports := append([]*report.Report{result.Setup}, result.Reports...)
	reports = slices.DeleteFunc(reports, func(r *report.Report) bool {
		return r == nil || (s.flags.quiet && !r.HasErrors())
	})
	report.Sort(reports)
	s.printer.Print(s.out, reports...)

	if s.flags.quiet {
		return
	}
	if result.Outcome == mdpages.OutcomeNothingToDo {
		fmt.Fprintln(s.out, "Nothing to do.")
		return
	}
	fmt.Fprintf(s.out, "Built %d page(s) in %s\n", len(result.Rebuilt), result.Duration.Round(time.Millisecond))
	if s.flags.verbose {
		printChunkCounts(s.out, result.ChunkCounts)
	}
}

// printChunkCounts prints chunk statistics sorted by type tag.
func printChunkCounts(w io.Writer, counts map[string]int) {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	for _, tag := range tags {
		fmt.Fprintf(w, "  %-24s %d\n", tag, counts[tag])
	}
}

// writeMetrics dumps the collected metrics when --metrics-file is set.
func (s *buildSession) writeMetrics() error {
	if s.recorder == nil {
		return nil
	}
	if err := s.recorder.WriteTextfile(s.flags.metricsFile); err != nil {
		return fmt.Errorf("%w: %v", ErrMetricsWrite, err)
	}
	return nil
}

// watch rebuilds changed pages until ctx is canceled. A changed page is
// rebuilt alone; a changed template rebuilds every page.
func (s *buildSession) watch(ctx context.Context) (int, error) {
	w := &watch.Watcher{
		InputDir:     s.input.InputDir,
		TemplatePath: s.input.TemplatePath,
		Debounce:     watch.DefaultDebounce,
		Logger:       s.logger,
		OnDocument: func(ctx context.Context, path string) {
			rep := s.builder.BuildFile(ctx, path, s.input)
			s.printer.Print(s.out, rep)
			if !s.flags.quiet {
				fmt.Fprintf(s.out, "Rebuilt %s\n", filepath.Base(path))
			}
			if err := s.writeMetrics(); err != nil {
				s.logger.Warn("metrics", "error", err)
			}
		},
		OnTemplate: func(ctx context.Context) {
			in := s.input
			in.RebuildAll = true
			result, err := s.builder.Build(ctx, in)
			if result != nil {
				s.printResult(result)
			}
			if err != nil && ctx.Err() == nil {
				fmt.Fprintf(s.env.Stderr, "error: %v%s\n", err, hintFor(err))
			}
			if err := s.writeMetrics(); err != nil {
				s.logger.Warn("metrics", "error", err)
			}
		},
	}

	if !s.flags.quiet {
		fmt.Fprintf(s.out, "Watching %s for changes (Ctrl-C to stop)\n", s.input.InputDir)
	}
	if err := w.Run(ctx); err != nil {
		return ExitGeneral, err
	}
	return ExitSuccess, nil
}

// newLogger creates the diagnostic logger. Debug records are only shown
// with --verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// hintFor returns an actionable hint for a build error, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound()
	case errors.Is(err, mdpages.ErrInputDir), errors.Is(err, watch.ErrNoInputDir):
		return hints.ForInputDir()
	case errors.Is(err, mdpages.ErrOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, mdpages.ErrInvalidTarget), errors.Is(err, pipeline.ErrUnknownFormat):
		return hints.ForTarget()
	case errors.Is(err, mdpages.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	default:
		return ""
	}
}
