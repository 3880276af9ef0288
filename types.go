package mdpages

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alnah/go-mdpages/internal/metrics"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/registry"
	"github.com/alnah/go-mdpages/internal/report"
)

// Outcome tells whether a build did any work.
type Outcome int

// Build outcomes.
const (
	OutcomeNothingToDo Outcome = iota
	OutcomeBuilt
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeNothingToDo:
		return "nothing to do"
	case OutcomeBuilt:
		return "built"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Progress receives build progress. Implementations must not block.
type Progress interface {
	Start(total int)
	Increment()
	Done()
}

// Input describes one build.
type Input struct {
	InputDir     string          // directory holding the source documents
	OutputDir    string          // directory receiving the targets
	TemplatePath string          // page template; empty or missing falls back to the embedded one
	Target       pipeline.Format // html (default) or latex
	RebuildAll   bool            // ignore staleness
	AbortOnDraft bool            // truncate draft pages
	Reformat     bool            // rewrite sources from their chunks after a clean build
	PDF          bool            // also export HTML targets to PDF
	Workers      int             // 0 means automatic
	Progress     Progress        // optional
}

// target returns the requested format, HTML when unset.
func (in Input) target() pipeline.Format {
	if in.Target == "" {
		return pipeline.FormatHTML
	}
	return in.Target
}

// Validate checks the input before any file is touched.
func (in Input) Validate() error {
	if in.InputDir == "" {
		return fmt.Errorf("%w: no input directory given", ErrInputDir)
	}
	switch in.target() {
	case pipeline.FormatHTML, pipeline.FormatLaTeX:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTarget, in.Target)
	}
	if in.PDF && in.target() != pipeline.FormatHTML {
		return fmt.Errorf("%w: PDF export needs the html target", ErrInvalidTarget)
	}
	return nil
}

// Result is the aggregated outcome of a build.
type Result struct {
	Outcome Outcome

	// Reports holds one report per processed document, most severe first.
	Reports []*report.Report

	// Setup holds diagnostics about the build itself, such as a missing
	// template.
	Setup *report.Report

	// Rebuilt lists the processed sources in discovery order.
	Rebuilt []string

	// ChunkCounts counts chunks per type tag across all documents.
	ChunkCounts map[string]int

	Duration time.Duration
}

// MaxSeverity returns the highest severity across the setup and document
// reports. A build failed when it is report.Error.
func (r *Result) MaxSeverity() report.Severity {
	return report.MaxOf(append([]*report.Report{r.Setup}, r.Reports...)...)
}

// Option configures a Builder.
type Option func(*Builder)

// defaultTimeout bounds the load of one page in the PDF renderer.
const defaultTimeout = 30 * time.Second

// WithRegistry sets the plugin registry. It is frozen by NewBuilder.
func WithRegistry(r *registry.Registry) Option {
	return func(b *Builder) {
		b.registry = r
	}
}

// WithConverter sets the text converter used by chunks.
func WithConverter(c pipeline.Converter) Option {
	return func(b *Builder) {
		b.converter = c
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		b.recorder = r
	}
}

// WithPDFRenderer sets the factory for PDF renderers. One renderer is
// created per concurrent export, on first use.
func WithPDFRenderer(f func() PDFRenderer) Option {
	return func(b *Builder) {
		b.newRenderer = f
	}
}

// WithTimeout sets the PDF page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpages: WithTimeout duration must be positive")
	}
	return func(b *Builder) {
		b.timeout = d
	}
}

// WithLogger sets the logger. Builders log nothing by default.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// discardLogger drops every record.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
