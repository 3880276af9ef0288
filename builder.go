package mdpages

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdpages/internal/cast"
	"github.com/alnah/go-mdpages/internal/metrics"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/plugins"
	"github.com/alnah/go-mdpages/internal/registry"
	"github.com/alnah/go-mdpages/internal/report"
)

// Compile-time interface checks.
var (
	_ pipeline.Converter   = (*pipeline.Goldmark)(nil)
	_ pipeline.CSSInjector = (*pipeline.CSSInjection)(nil)
	_ metrics.Recorder     = metrics.NoopRecorder{}
)

// Builder turns a directory of source documents into pages.
// Create with NewBuilder and share it: a Builder holds no per-build state
// and its registry is frozen, so concurrent builds are safe.
type Builder struct {
	registry    *registry.Registry
	caster      *cast.Caster
	converter   pipeline.Converter
	cssInjector pipeline.CSSInjector
	recorder    metrics.Recorder
	newRenderer func() PDFRenderer
	timeout     time.Duration
	logger      *slog.Logger
}

// NewBuilder creates a Builder. Without WithRegistry, the default plugins
// are registered. The registry is frozen before NewBuilder returns.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		converter:   pipeline.NewGoldmark(),
		cssInjector: &pipeline.CSSInjection{},
		recorder:    metrics.NoopRecorder{},
		timeout:     defaultTimeout,
		logger:      discardLogger(),
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.registry == nil {
		reg := registry.New(nil)
		if err := plugins.RegisterDefaults(reg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRegistry, err)
		}
		b.registry = reg
	}
	b.registry.Freeze()
	b.caster = cast.New(b.registry)

	if b.newRenderer == nil {
		timeout := b.timeout
		b.newRenderer = func() PDFRenderer { return newRodRenderer(timeout) }
	}

	return b, nil
}

// Registry returns the frozen plugin registry.
func (b *Builder) Registry() *registry.Registry {
	return b.registry
}

// Build rebuilds the stale documents of in.InputDir.
//
// With nothing stale, no work is done and the outcome is
// OutcomeNothingToDo. A single document is built in the calling goroutine;
// more are built by a bounded pool of goroutines. Problems inside documents
// are diagnostics in Result.Reports and never stop sibling documents. The
// returned error covers the build setup and cancellation only; on
// cancellation the partial result is returned with ctx.Err().
func (b *Builder) Build(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	target := in.target()
	outputDir := in.outputDir()

	setup := report.New("")
	tmpl, err := b.loadTemplate(in.TemplatePath, target, setup)
	if err != nil {
		return nil, err
	}

	jobs, err := Discover(in.InputDir, outputDir, target)
	if err != nil {
		return nil, err
	}
	stale := b.staleJobs(jobs, in)

	result := &Result{
		Setup:       setup,
		ChunkCounts: map[string]int{},
	}
	if len(stale) == 0 {
		result.Outcome = OutcomeNothingToDo
		result.Duration = time.Since(start)
		b.recorder.IncBuildOutcome(metrics.OutcomeNothingToDo)
		b.logger.Debug("nothing to do", "input", in.InputDir, "documents", len(jobs))
		return result, nil
	}
	result.Outcome = OutcomeBuilt

	run := &buildRun{
		builder:  b,
		in:       in,
		target:   target,
		template: tmpl,
	}
	if in.PDF {
		run.pool = NewRendererPool(ResolvePoolSize(in.Workers), b.newRenderer)
		defer func() {
			if err := run.pool.Close(); err != nil {
				b.logger.Warn("closing PDF renderers", "error", err)
			}
		}()
	}

	for _, res := range b.runJobs(ctx, run, stale, in) {
		result.Reports = append(result.Reports, res.report)
		for tag, n := range res.counts {
			result.ChunkCounts[tag] += n
		}
	}
	for _, job := range stale {
		result.Rebuilt = append(result.Rebuilt, job.Source)
	}
	report.Sort(result.Reports)
	for tag, n := range result.ChunkCounts {
		b.recorder.AddChunks(tag, n)
	}

	result.Duration = time.Since(start)
	b.recorder.ObserveBuildDuration(result.Duration)
	switch {
	case ctx.Err() != nil:
		b.recorder.IncBuildOutcome(metrics.OutcomeCanceled)
		return result, ctx.Err()
	case result.MaxSeverity() >= report.Error:
		b.recorder.IncBuildOutcome(metrics.OutcomeFailed)
	default:
		b.recorder.IncBuildOutcome(metrics.OutcomeBuilt)
	}

	b.logger.Debug("build finished",
		"documents", len(stale),
		"severity", result.MaxSeverity().String(),
		"duration", result.Duration)
	return result, nil
}

// BuildFile rebuilds one source document regardless of staleness. Watch mode
// calls it once per changed document. Setup problems are reported in the
// returned report.
func (b *Builder) BuildFile(ctx context.Context, source string, in Input) *report.Report {
	if err := in.Validate(); err != nil {
		rep := report.New(source)
		rep.Error(err.Error())
		return rep
	}
	target := in.target()

	setup := report.New(source)
	tmpl, err := b.loadTemplate(in.TemplatePath, target, setup)
	if err != nil {
		setup.Error(err.Error())
		return setup
	}

	run := &buildRun{
		builder:  b,
		in:       in,
		target:   target,
		template: tmpl,
	}
	if in.PDF {
		run.pool = NewRendererPool(1, b.newRenderer)
		defer func() {
			if err := run.pool.Close(); err != nil {
				b.logger.Warn("closing PDF renderer", "error", err)
			}
		}()
	}

	res := run.process(ctx, Job{Source: source, Target: TargetPath(in.outputDir(), source, target)})
	for _, e := range setup.Entries() {
		res.report.Tell(e.Message, e.Severity, e.Path, e.Line)
	}
	for tag, n := range res.counts {
		b.recorder.AddChunks(tag, n)
	}
	return res.report
}

// staleJobs filters jobs down to the ones needing a rebuild. A job whose
// files cannot be inspected is rebuilt, so that the failure surfaces in its
// report.
func (b *Builder) staleJobs(jobs []Job, in Input) []Job {
	var stale []Job
	for _, job := range jobs {
		ok, err := IsStale(job.Source, job.Target, in.TemplatePath, in.RebuildAll)
		if err != nil {
			b.logger.Debug("staleness check failed", "source", job.Source, "error", err)
			ok = true
		}
		b.logger.Debug("staleness", "source", job.Source, "stale", ok)
		if ok {
			stale = append(stale, job)
		}
	}
	return stale
}

// runJobs builds every job and returns the results in job order.
func (b *Builder) runJobs(ctx context.Context, run *buildRun, jobs []Job, in Input) []jobResult {
	results := make([]jobResult, len(jobs))
	progress := in.Progress
	if progress == nil {
		progress = noProgress{}
	}
	progress.Start(len(jobs))
	defer progress.Done()

	if len(jobs) == 1 {
		b.recorder.SetWorkers(1)
		results[0] = run.process(ctx, jobs[0])
		progress.Increment()
		return results
	}

	workers := ResolvePoolSize(in.Workers)
	b.recorder.SetWorkers(workers)
	b.logger.Debug("starting workers", "workers", workers, "documents", len(jobs))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = run.process(ctx, job)
			progress.Increment()
			return nil
		})
	}
	_ = g.Wait() // jobs report through their results, never through errors

	return results
}

// outputDir returns the output directory, the working directory when unset.
func (in Input) outputDir() string {
	if in.OutputDir == "" {
		return "."
	}
	return in.OutputDir
}

type noProgress struct{}

func (noProgress) Start(int)  {}
func (noProgress) Increment() {}
func (noProgress) Done()      {}
