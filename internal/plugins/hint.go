package plugins

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdpages/internal/assets"
	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/report"
)

// Hint is a collapsible block. Its body is the prose after the closing
// fence.
type Hint struct {
	*chunk.YAML
	Title string
	Body  string
}

func newHint(region *chunker.Region, fields chunk.Fields, vars *chunk.PageVars, rep *report.Report) chunk.Chunk {
	h := &Hint{
		YAML:  chunk.NewYAML(region, fields, vars, rep, chunk.Schema{Optional: []string{"title"}}),
		Title: fields.String("title"),
		Body:  region.PostYAMLContent(),
	}
	if !region.HasPostYAML() {
		tell(rep, region, report.Warning, "hint should have its content right after the closing ---")
	}
	return h
}

// Render implements chunk.Chunk.
func (h *Hint) Render(ctx context.Context, rc *chunk.RenderContext) (string, error) {
	body, err := rc.Convert(ctx, h.Body, pipeline.FormatMarkdown)
	if err != nil {
		return "", err
	}

	switch rc.Target {
	case pipeline.FormatHTML:
		return fmt.Sprintf("<button class=\"collapsible\">%s</button>\n<div class=\"collapsible-content\">\n%s\n</div>",
			escape(h.Title), body), nil
	case pipeline.FormatLaTeX:
		return fmt.Sprintf("\\paragraph{%s}\n%s", pipeline.EscapeLaTeX(h.Title), body), nil
	default:
		return "", chunk.ErrNotRenderable
	}
}

// UsesPostYAML implements chunk.PostYAMLReader.
func (h *Hint) UsesPostYAML() bool { return true }

// CSS implements chunk.Styler.
func (h *Hint) CSS() string { return assets.MustStyle("hint") }
