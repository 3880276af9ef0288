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

// Link is a card pointing to another page or site.
type Link struct {
	*chunk.YAML
	Href  string
	Title string
	Text  string
	Icon  string
}

func newLink(region *chunker.Region, fields chunk.Fields, vars *chunk.PageVars, rep *report.Report) chunk.Chunk {
	return &Link{
		YAML: chunk.NewYAML(region, fields, vars, rep, chunk.Schema{
			Required: []string{"link", "title"},
			Optional: []string{"text", "icon"},
		}),
		Href:  fields.String("link"),
		Title: fields.String("title"),
		Text:  fields.String("text"),
		Icon:  fields.String("icon"),
	}
}

// Render implements chunk.Chunk.
func (l *Link) Render(_ context.Context, rc *chunk.RenderContext) (string, error) {
	switch rc.Target {
	case pipeline.FormatHTML:
		var b strings.Builder
		b.WriteString("<div class=\"linkcard\">\n")
		fmt.Fprintf(&b, "<a href=\"%s\">", escape(l.Href))
		if l.Icon != "" {
			fmt.Fprintf(&b, "<i class=\"icon icon-%s\"></i> ", escape(l.Icon))
		}
		fmt.Fprintf(&b, "<span class=\"title\">%s</span>", escape(l.Title))
		if l.Text != "" {
			fmt.Fprintf(&b, "<span class=\"text\">%s</span>", escape(l.Text))
		}
		b.WriteString("</a>\n</div>")
		return b.String(), nil
	case pipeline.FormatLaTeX:
		out := fmt.Sprintf(`\href{%s}{\textbf{%s}}`, l.Href, pipeline.EscapeLaTeX(l.Title))
		if l.Text != "" {
			out += " " + pipeline.EscapeLaTeX(l.Text)
		}
		return out, nil
	default:
		return "", chunk.ErrNotRenderable
	}
}

// CSS implements chunk.Styler.
func (l *Link) CSS() string { return assets.MustStyle("link") }
