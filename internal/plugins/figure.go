package plugins

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpages/internal/assets"
	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/fileutil"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/report"
)

// Figure is an image with an optional caption and link.
type Figure struct {
	*chunk.YAML
	Source  string
	Caption string
	Link    string
}

func newFigure(region *chunker.Region, fields chunk.Fields, vars *chunk.PageVars, rep *report.Report) chunk.Chunk {
	f := &Figure{
		YAML: chunk.NewYAML(region, fields, vars, rep, chunk.Schema{
			Required: []string{"source"},
			Optional: []string{"caption", "link"},
		}),
		Source:  fields.String("source"),
		Caption: fields.String("caption"),
		Link:    fields.String("link"),
	}
	if !f.OK() {
		return f
	}

	if f.Remote() {
		tell(rep, region, report.Warning, "figure refers to remote file "+f.Source)
	} else if _, err := os.Stat(filepath.Join(filepath.Dir(region.Path), f.Source)); err != nil {
		tell(rep, region, report.Warning, fmt.Sprintf("figure file %s does not exist", f.Source))
	}
	return f
}

// Remote reports whether the source is an http(s) URL.
func (f *Figure) Remote() bool {
	return fileutil.IsURL(f.Source)
}

// Render implements chunk.Chunk.
func (f *Figure) Render(ctx context.Context, rc *chunk.RenderContext) (string, error) {
	switch rc.Target {
	case pipeline.FormatHTML:
		return f.html(ctx, rc)
	case pipeline.FormatLaTeX:
		return f.latex(ctx, rc)
	default:
		return "", chunk.ErrNotRenderable
	}
}

func (f *Figure) html(ctx context.Context, rc *chunk.RenderContext) (string, error) {
	var b strings.Builder
	b.WriteString("<div class=\"figure\">\n")

	img := fmt.Sprintf(`<img src="%s" width="100%%"/>`, escape(f.Source))
	if f.Caption != "" {
		img = fmt.Sprintf(`<img src="%s" alt="%s" width="100%%"/>`, escape(f.Source), escape(f.Caption))
	}
	if f.Link != "" {
		img = fmt.Sprintf(`<a href="%s">%s</a>`, escape(f.Link), img)
	}
	b.WriteString(img)
	b.WriteString("\n")

	if f.Caption != "" {
		caption, err := inline(ctx, rc, f.Caption)
		if err != nil {
			return "", err
		}
		sidenote(&b, f.Source, caption)
	}
	b.WriteString("</div>")
	return b.String(), nil
}

func (f *Figure) latex(ctx context.Context, rc *chunk.RenderContext) (string, error) {
	if f.Remote() {
		rc.Tell(f.Region(), "remote figure cannot be included in LaTeX output", report.Warning)
		return "", chunk.ErrNotRenderable
	}
	if strings.EqualFold(filepath.Ext(f.Source), ".gif") {
		rc.Tell(f.Region(), fmt.Sprintf("figure file %s in gif format is not compatible with LaTeX", f.Source), report.Warning)
		return "", chunk.ErrNotRenderable
	}

	var b strings.Builder
	b.WriteString("\\begin{figure}[htbp]\n")
	fmt.Fprintf(&b, "\\includegraphics[width=\\linewidth]{%s}%%\n", filepath.ToSlash(f.Source))
	if f.Caption != "" {
		caption, err := inline(ctx, rc, f.Caption)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\\caption{%s}\n", caption)
	}
	b.WriteString("\\end{figure}")
	return b.String(), nil
}

// CSS implements chunk.Styler.
func (f *Figure) CSS() string { return assets.MustStyle("figure") }
