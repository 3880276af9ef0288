// Package assemble renders an arranged chunk sequence into page content.
package assemble

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/report"
)

// Draft placeholders, per target format.
const (
	DraftMarkerHTML  = "<mark>This site is under construction.</mark>"
	DraftMarkerLaTeX = `\textbf{This document is under construction.}`
)

// sectionStarter is implemented by chunks that open a new section.
type sectionStarter interface {
	StartsSection() bool
}

// Page is the assembled content of one document.
type Page struct {
	Content   string
	CSS       []string // stylesheets requested by chunks, deduplicated, in order
	Truncated bool     // output stopped at the draft placeholder
}

// Assembler renders arranged chunks.
type Assembler struct {
	// AbortOnDraft replaces the content of draft pages with a placeholder.
	AbortOnDraft bool
}

// Assemble renders chunks into page content for rc.Target.
//
// HTML output is wrapped in a page div, and content is grouped into
// sections opened at the first content and at each section-start chunk.
// Chunks that are unusable or carry data only produce nothing. Each main
// chunk is followed by its asides. Render failures are reported as errors
// at the chunk line and the chunk is skipped.
//
// When AbortOnDraft is set and the page status is draft, no chunk is
// rendered and the content is the placeholder alone. Casting has completed
// by then, so the status is known before the first chunk.
func (a Assembler) Assemble(ctx context.Context, chunks []chunk.Chunk, vars *chunk.PageVars, rc *chunk.RenderContext) Page {
	w := newWriter(rc.Target)

	var page Page
	if a.AbortOnDraft && vars != nil && vars.IsDraft() {
		w.write(w.draftMarker())
		page.Truncated = true
		page.Content = w.finish()
		return page
	}

	seenCSS := map[string]bool{}
	for _, main := range chunks {
		group := append([]chunk.Chunk{main}, main.Asides()...)
		for i, c := range group {
			if s, ok := c.(sectionStarter); ok && i == 0 && s.StartsSection() {
				w.closeSection()
			}

			out, ok := a.render(ctx, c, rc)
			if !ok || out == "" {
				continue
			}
			w.write(out)

			if s, isStyler := c.(chunk.Styler); isStyler && rc.Target == pipeline.FormatHTML {
				if css := s.CSS(); css != "" && !seenCSS[css] {
					seenCSS[css] = true
					page.CSS = append(page.CSS, css)
				}
			}
		}
	}

	page.Content = w.finish()
	return page
}

// render renders one chunk, turning failures and panics into diagnostics.
func (a Assembler) render(ctx context.Context, c chunk.Chunk, rc *chunk.RenderContext) (out string, ok bool) {
	if !c.OK() {
		return "", false
	}
	if _, data := c.(*chunk.YAMLData); data {
		return "", false
	}

	defer func() {
		if p := recover(); p != nil {
			reportFailure(rc, c, fmt.Errorf("panic: %v", p))
			out, ok = "", false
		}
	}()

	out, err := c.Render(ctx, rc)
	switch {
	case errors.Is(err, chunk.ErrNotRenderable):
		return "", false
	case err != nil:
		reportFailure(rc, c, err)
		return "", false
	}
	return out, true
}

func reportFailure(rc *chunk.RenderContext, c chunk.Chunk, err error) {
	if rc.Report == nil {
		return
	}
	r := c.Region()
	rc.Report.Tell(fmt.Sprintf("%s block could not be rendered: %v", c.TypeTag(), err), report.Error, r.Path, r.StartLine)
}

// writer lays out rendered chunks for one target format.
type writer struct {
	b           strings.Builder
	html        bool
	sectionOpen bool
	parts       int
}

func newWriter(target pipeline.Format) *writer {
	w := &writer{html: target == pipeline.FormatHTML}
	if w.html {
		w.b.WriteString("<div class=\"page\">\n")
	}
	return w
}

func (w *writer) write(s string) {
	if w.html {
		if !w.sectionOpen {
			w.b.WriteString("<section class=\"content\">\n")
			w.sectionOpen = true
		}
		w.b.WriteString(s)
		w.b.WriteString("\n")
		return
	}
	if w.parts > 0 {
		w.b.WriteString("\n\n")
	}
	w.b.WriteString(s)
	w.parts++
}

func (w *writer) closeSection() {
	if w.html && w.sectionOpen {
		w.b.WriteString("</section>\n")
		w.sectionOpen = false
	}
}

func (w *writer) draftMarker() string {
	if w.html {
		return DraftMarkerHTML
	}
	return DraftMarkerLaTeX
}

func (w *writer) finish() string {
	if w.html {
		w.closeSection()
		w.b.WriteString("</div>\n")
	}
	return w.b.String()
}
