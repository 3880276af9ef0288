package plugins

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdpages/internal/assets"
	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/registry"
	"github.com/alnah/go-mdpages/internal/report"
)

// Callout is a classed paragraph such as ":warning:" or ":tip:".
type Callout struct {
	*chunk.Markdown
	Label string
}

func callout(label string) registry.Factory {
	return func(region *chunker.Region, _ chunk.Fields, vars *chunk.PageVars, _ *report.Report) chunk.Chunk {
		return &Callout{Markdown: chunk.NewMarkdown(region, vars), Label: label}
	}
}

// Render implements chunk.Chunk. HTML output is the classed paragraph;
// LaTeX output is a box opened by the bold label.
func (c *Callout) Render(ctx context.Context, rc *chunk.RenderContext) (string, error) {
	if rc.Target != pipeline.FormatLaTeX {
		return c.Markdown.Render(ctx, rc)
	}
	body, err := rc.Convert(ctx, c.Content, pipeline.FormatMarkdown)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("\\begin{tcolorbox}\n\\textbf{%s:} %s\n\\end{tcolorbox}", c.Label, body), nil
}

// CSS implements chunk.Styler.
func (c *Callout) CSS() string { return assets.MustStyle("callout") }
