package chunk

import (
	"context"
	"strings"

	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/pipeline"
)

// AsideTag marks a Markdown paragraph as an aside.
const AsideTag = "aside"

// Markdown is a prose chunk, optionally carrying a ":class:" tag.
type Markdown struct {
	Base
	ClassTag     string
	Content      string // text with the tag marker removed
	SectionStart bool
}

// NewMarkdown builds a Markdown chunk. The "aside" tag sets the aside flag.
func NewMarkdown(region *chunker.Region, vars *PageVars) *Markdown {
	m := &Markdown{
		Base:     NewBase(region, vars),
		ClassTag: region.Tag,
		Content:  stripTag(region),
	}
	m.SetAside(region.Tag == AsideTag)
	first := strings.TrimSpace(region.FirstLine())
	m.SectionStart = strings.HasPrefix(first, "# ")
	return m
}

// stripTag removes the ":tag:" marker from the first line.
func stripTag(region *chunker.Region) string {
	if region.Tag == "" || len(region.Lines) == 0 {
		return region.Content()
	}
	first := strings.TrimSpace(region.Lines[0])
	first = strings.TrimSpace(first[len(region.Tag)+2:])

	lines := append([]string{first}, region.Lines[1:]...)
	if first == "" {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

// StartsSection reports whether the chunk opens a new page section.
func (m *Markdown) StartsSection() bool { return m.SectionStart }

// TypeTag implements Chunk.
func (m *Markdown) TypeTag() string {
	if m.ClassTag != "" {
		return "markdown:" + m.ClassTag
	}
	return "markdown"
}

// Render converts the prose to the target format. Asides and classed
// paragraphs are wrapped in an element carrying the class.
func (m *Markdown) Render(ctx context.Context, rc *RenderContext) (string, error) {
	body, err := rc.Convert(ctx, m.Content, pipeline.FormatMarkdown)
	if err != nil {
		return "", err
	}
	if m.ClassTag == "" {
		return body, nil
	}

	switch rc.Target {
	case pipeline.FormatHTML:
		if m.IsAside() {
			return `<span class="aside">` + body + `</span>`, nil
		}
		return `<div class="` + m.ClassTag + `">` + body + `</div>`, nil
	case pipeline.FormatLaTeX:
		if m.IsAside() {
			return `\marginpar{` + body + `}`, nil
		}
		return body, nil
	default:
		return body, nil
	}
}

// Recode reproduces the source form: the tag marker followed by the content.
func (m *Markdown) Recode() string {
	if m.ClassTag == "" {
		return m.Content
	}
	return ":" + m.ClassTag + ": " + m.Content
}
