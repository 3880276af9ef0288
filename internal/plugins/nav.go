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

// navOrder is the display order of navigation links.
var navOrder = []string{"prev", "up", "next"}

// NavLink is a labelled target.
type NavLink struct {
	Label string
	Href  string
}

// Nav is a previous/up/next navigation bar.
type Nav struct {
	*chunk.YAML
	Links map[string]NavLink
}

func newNav(region *chunker.Region, fields chunk.Fields, vars *chunk.PageVars, rep *report.Report) chunk.Chunk {
	n := &Nav{
		YAML: chunk.NewYAML(region, fields, vars, rep, chunk.Schema{
			Optional: navOrder,
		}),
		Links: map[string]NavLink{},
	}
	for _, key := range navOrder {
		if !fields.Has(key) {
			continue
		}
		pair := fields.Strings(key)
		if len(pair) != 2 {
			tell(rep, region, report.Warning, fmt.Sprintf("nav %s needs a [label, link] pair; ignored", key))
			continue
		}
		n.Links[key] = NavLink{Label: pair[0], Href: pair[1]}
	}
	return n
}

// Render implements chunk.Chunk. Navigation has no LaTeX form.
func (n *Nav) Render(_ context.Context, rc *chunk.RenderContext) (string, error) {
	if rc.Target != pipeline.FormatHTML {
		return "", chunk.ErrNotRenderable
	}

	var b strings.Builder
	b.WriteString("<nav class=\"pagenav\">\n")
	for _, key := range navOrder {
		link, ok := n.Links[key]
		if !ok {
			b.WriteString("<div></div>\n")
			continue
		}
		fmt.Fprintf(&b, "<a href=\"%s\" class=\"%s\">%s</a>\n", escape(link.Href), key, escape(link.Label))
	}
	b.WriteString("</nav>")
	return b.String(), nil
}

// CSS implements chunk.Styler.
func (n *Nav) CSS() string { return assets.MustStyle("nav") }
