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

// positionAside places a video in the margin next to the preceding block.
const positionAside = "aside"

// Video embeds a YouTube video, or shows a thumbnail link as an aside.
type Video struct {
	*chunk.YAML
	ID      string
	Start   string
	Caption string
}

func newVideo(region *chunker.Region, fields chunk.Fields, vars *chunk.PageVars, rep *report.Report) chunk.Chunk {
	v := &Video{
		YAML: chunk.NewYAML(region, fields, vars, rep, chunk.Schema{
			Required: []string{"video"},
			Optional: []string{"start", "caption", "position"},
		}),
		ID:      fields.String("video"),
		Start:   fields.String("start"),
		Caption: fields.String("caption"),
	}

	switch pos := strings.ToLower(fields.String("position")); pos {
	case positionAside:
		v.SetAside(true)
	case "":
	default:
		tell(rep, region, report.Warning, fmt.Sprintf("unknown video position %q", pos))
	}
	return v
}

// URL returns the watch link, including the start offset.
func (v *Video) URL() string {
	u := "https://youtu.be/" + v.ID
	if v.Start != "" {
		u += "?start=" + v.Start
	}
	return u
}

// Render implements chunk.Chunk.
func (v *Video) Render(ctx context.Context, rc *chunk.RenderContext) (string, error) {
	var caption string
	if v.Caption != "" {
		var err error
		if caption, err = inline(ctx, rc, v.Caption); err != nil {
			return "", err
		}
	}

	switch rc.Target {
	case pipeline.FormatHTML:
		if v.IsAside() {
			return v.thumbnail(caption), nil
		}
		return v.embed(caption), nil
	case pipeline.FormatLaTeX:
		out := fmt.Sprintf(`\url{%s}`, v.URL())
		if caption != "" {
			out = caption + `\\` + "\n" + out
		}
		if v.IsAside() {
			return `\marginpar{` + out + `}`, nil
		}
		return out, nil
	default:
		return "", chunk.ErrNotRenderable
	}
}

func (v *Video) thumbnail(caption string) string {
	id := chunker.HashString(v.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "<span name=\"%s\"></span><aside name=\"%s\">\n", id, id)
	fmt.Fprintf(&b, "<a href=\"%s\"><img width=\"240\" src=\"https://img.youtube.com/vi/%s/sddefault.jpg\"/></a>\n",
		escape(v.URL()), escape(v.ID))
	if caption != "" {
		b.WriteString(caption)
		b.WriteString("\n")
	}
	b.WriteString("</aside>")
	return b.String()
}

func (v *Video) embed(caption string) string {
	src := "https://www.youtube.com/embed/" + v.ID
	if v.Start != "" {
		src += "?start=" + v.Start
	}

	var b strings.Builder
	b.WriteString("<div class=\"figure\">\n")
	fmt.Fprintf(&b, "<iframe width=\"560\" height=\"315\" src=\"%s\" frameborder=\"0\" "+
		"allow=\"accelerometer; autoplay; encrypted-media; gyroscope; picture-in-picture\" allowfullscreen></iframe>\n",
		escape(src))
	if caption != "" {
		sidenote(&b, v.ID, caption)
	}
	b.WriteString("</div>")
	return b.String()
}

// CSS implements chunk.Styler.
func (v *Video) CSS() string { return assets.MustStyle("figure") }
