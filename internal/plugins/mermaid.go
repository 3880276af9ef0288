package plugins

import (
	"context"
	"strings"

	"github.com/alnah/go-mdpages/internal/assets"
	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/report"
)

// Mermaid is a diagram source passed to the browser-side renderer.
type Mermaid struct {
	*chunk.Code
}

func newMermaid(region *chunker.Region, _ chunk.Fields, vars *chunk.PageVars, _ *report.Report) chunk.Chunk {
	return &Mermaid{Code: chunk.NewCode(region, vars)}
}

// Source returns the diagram text between the fences.
func (m *Mermaid) Source() string {
	lines := m.Region().Lines
	if len(lines) == 0 {
		return ""
	}
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.HasPrefix(strings.TrimSpace(lines[n-1]), "```") {
		lines = lines[:n-1]
	}
	return strings.Join(lines, "\n")
}

// TypeTag implements chunk.Chunk.
func (m *Mermaid) TypeTag() string { return "mermaid" }

// Render implements chunk.Chunk. Diagrams have no LaTeX form.
func (m *Mermaid) Render(_ context.Context, rc *chunk.RenderContext) (string, error) {
	if rc.Target != pipeline.FormatHTML {
		return "", chunk.ErrNotRenderable
	}
	return "<pre class=\"mermaid\">\n" + escape(m.Source()) + "\n</pre>", nil
}

// CSS implements chunk.Styler.
func (m *Mermaid) CSS() string { return assets.MustStyle("mermaid") }
