package mdpages

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alnah/go-mdpages/internal/arrange"
	"github.com/alnah/go-mdpages/internal/assemble"
	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/report"
)

// buildRun holds what the jobs of one build share. Everything in it is
// read-only once jobs start.
type buildRun struct {
	builder  *Builder
	in       Input
	target   pipeline.Format
	template string
	pool     *RendererPool // nil without PDF export
}

// jobResult is what a document job hands back to the build.
type jobResult struct {
	report *report.Report
	counts map[string]int
}

// process builds one document. It never fails: every problem, including a
// panic, ends up in the returned report.
func (r *buildRun) process(ctx context.Context, job Job) (res jobResult) {
	b := r.builder
	start := time.Now()
	rep := report.New(job.Source)
	res.report = rep

	defer func() {
		if p := recover(); p != nil {
			rep.Error(fmt.Sprintf("internal error: %v", p))
		}
		b.recorder.ObserveDocumentDuration(time.Since(start))
		b.recorder.IncDocumentResult(rep.MaxSeverity().String())
		b.logger.Debug("document done",
			"source", job.Source,
			"severity", rep.MaxSeverity().String(),
			"duration", time.Since(start))
	}()

	if ctx.Err() != nil {
		rep.Warning("build canceled before this document was processed")
		return res
	}
	b.logger.Debug("building document", "source", job.Source, "target", job.Target)

	text, err := readSource(job.Source)
	if err != nil {
		rep.Error(err.Error())
		return res
	}

	regions := chunker.SplitText(text, job.Source, rep)
	chunks, vars := b.caster.CastAll(regions, rep)
	res.counts = countChunks(chunks)
	arranged := arrange.Arrange(chunks, rep)

	rc := &chunk.RenderContext{
		Target:     r.target,
		Converter:  b.converter,
		Report:     rep,
		SourcePath: job.Source,
		OutputPath: job.Target,
	}
	page := assemble.Assembler{AbortOnDraft: r.in.AbortOnDraft}.Assemble(ctx, arranged, vars, rc)

	out, _ := pipeline.SubstituteContent(r.template, page.Content)
	if r.target == pipeline.FormatHTML {
		out = b.cssInjector.InjectCSS(ctx, out, pipeline.JoinCSS(page.CSS))
	}

	if err := writeTarget(job.Target, out, rep); err != nil {
		rep.Error(err.Error())
		return res
	}

	if r.in.Reformat && !rep.HasErrors() {
		changed, err := reformatSource(job.Source, job.Target, chunks, text)
		switch {
		case err != nil:
			rep.Error(err.Error())
		case changed:
			rep.Info("source reformatted")
		}
	}

	if r.pool != nil {
		r.exportPDF(ctx, job, out, rep)
	}

	return res
}

// exportPDF renders a written page to PDF with a pooled renderer.
func (r *buildRun) exportPDF(ctx context.Context, job Job, page string, rep *report.Report) {
	renderer, err := r.pool.Acquire(ctx)
	if err != nil {
		rep.Error(fmt.Sprintf("PDF export: %v", err))
		return
	}
	defer r.pool.Release(renderer)

	if err := exportPDF(ctx, renderer, page, filepath.Dir(job.Source), job.Target); err != nil {
		rep.Error(fmt.Sprintf("PDF export: %v", err))
	}
}

// countChunks counts chunks per type tag.
func countChunks(chunks []chunk.Chunk) map[string]int {
	counts := make(map[string]int, len(chunks))
	for _, c := range chunks {
		counts[c.TypeTag()]++
	}
	return counts
}
