package plugins

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-mdpages/internal/assets"
	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/report"
)

// maxLines bounds the number of ruled lines of one block.
const maxLines = 200

// Lines is a number of ruled lines to write on.
type Lines struct {
	*chunk.YAML
	Count int
}

func newLines(region *chunker.Region, fields chunk.Fields, vars *chunk.PageVars, rep *report.Report) chunk.Chunk {
	l := &Lines{
		YAML: chunk.NewYAML(region, fields, vars, rep, chunk.Schema{Required: []string{"lines"}}),
	}
	if !l.OK() {
		return l
	}

	n, ok := intField(fields, "lines")
	if !ok || n < 0 || n > maxLines {
		tell(rep, region, report.Error, fmt.Sprintf("lines must be a whole number between 0 and %d", maxLines))
		l.Invalidate()
		return l
	}
	l.Count = n
	return l
}

// Render implements chunk.Chunk.
func (l *Lines) Render(_ context.Context, rc *chunk.RenderContext) (string, error) {
	var line string
	switch rc.Target {
	case pipeline.FormatHTML:
		line = `<hr class="lines"/>`
	case pipeline.FormatLaTeX:
		line = `\vspace{1.5em}\noindent\rule{\linewidth}{0.4pt}`
	default:
		return "", chunk.ErrNotRenderable
	}

	out := make([]string, l.Count)
	for i := range out {
		out[i] = line
	}
	return strings.Join(out, "\n"), nil
}

// CSS implements chunk.Styler.
func (l *Lines) CSS() string { return assets.MustStyle("lines") }
