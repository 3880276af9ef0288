package chunk

import (
	"context"

	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/pipeline"
)

// HTML is a raw HTML block.
type HTML struct {
	Base
}

// NewHTML wraps region.
func NewHTML(region *chunker.Region, vars *PageVars) *HTML {
	return &HTML{Base: NewBase(region, vars)}
}

// TypeTag implements Chunk.
func (h *HTML) TypeTag() string { return "html" }

// Render passes HTML through, or converts it for other targets.
func (h *HTML) Render(ctx context.Context, rc *RenderContext) (string, error) {
	return rc.Convert(ctx, h.Region().Content(), pipeline.FormatHTML)
}

// Recode implements Chunk.
func (h *HTML) Recode() string { return h.Region().Content() }

// Code is a fenced code block, fences included.
type Code struct {
	Base
	Lang string
}

// NewCode wraps region.
func NewCode(region *chunker.Region, vars *PageVars) *Code {
	return &Code{Base: NewBase(region, vars), Lang: region.Lang()}
}

// TypeTag implements Chunk.
func (c *Code) TypeTag() string { return "code" }

// Render converts the fenced block as Markdown, which highlights it.
func (c *Code) Render(ctx context.Context, rc *RenderContext) (string, error) {
	return rc.Convert(ctx, c.Region().Content(), pipeline.FormatMarkdown)
}

// CSS implements Styler.
func (c *Code) CSS() string { return pipeline.HighlightCSS() }

// Recode implements Chunk.
func (c *Code) Recode() string { return c.Region().Content() }

// Compile-time interface checks.
var (
	_ Chunk  = (*Markdown)(nil)
	_ Chunk  = (*YAML)(nil)
	_ Chunk  = (*YAMLData)(nil)
	_ Chunk  = (*HTML)(nil)
	_ Chunk  = (*Code)(nil)
	_ Styler = (*Code)(nil)
)
