// Package chunk defines the semantic, renderable units built from regions.
//
// Every chunk wraps exactly one region and a reference to its document's
// page variables. The variants (Markdown, YAML, YAMLData, HTML, Code) share
// the Base field block and implement the same capability set; content
// plugins embed a variant and override what they need.
package chunk

import (
	"context"
	"errors"

	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/report"
)

// ErrNotRenderable signals that a chunk has no rendering for the requested
// target format. It is not a failure: the chunk simply contributes nothing.
var ErrNotRenderable = errors.New("no rendering for target format")

// Chunk is the capability set shared by all chunk variants.
type Chunk interface {
	Region() *chunker.Region
	Vars() *PageVars
	OK() bool
	IsAside() bool
	Asides() []Chunk
	AddAside(c Chunk)
	TypeTag() string
	Render(ctx context.Context, rc *RenderContext) (string, error)
	Recode() string
}

// PostYAMLReader is implemented by YAML chunks that use the prose following
// their closing fence.
type PostYAMLReader interface {
	UsesPostYAML() bool
}

// Styler is implemented by chunks that need a stylesheet on HTML pages.
type Styler interface {
	CSS() string
}

// RenderContext carries what a chunk needs to render itself.
type RenderContext struct {
	Target     pipeline.Format
	Converter  pipeline.Converter
	Report     *report.Report
	SourcePath string
	OutputPath string
}

// Convert converts text from the given format to the render target.
func (rc *RenderContext) Convert(ctx context.Context, text string, from pipeline.Format) (string, error) {
	return rc.Converter.Convert(ctx, text, from, rc.Target)
}

// Tell reports a diagnostic at a region's first line.
func (rc *RenderContext) Tell(r *chunker.Region, msg string, sev report.Severity) {
	if rc.Report == nil {
		return
	}
	rc.Report.Tell(msg, sev, r.Path, r.StartLine)
}

// Base is the field block shared by every variant.
type Base struct {
	region *chunker.Region
	vars   *PageVars
	ok     bool
	aside  bool
	asides []Chunk
}

// NewBase creates a usable base for region.
func NewBase(region *chunker.Region, vars *PageVars) Base {
	return Base{region: region, vars: vars, ok: true}
}

// Region returns the wrapped region.
func (b *Base) Region() *chunker.Region { return b.region }

// Vars returns the document's page variables.
func (b *Base) Vars() *PageVars { return b.vars }

// OK reports whether the chunk is usable for rendering.
func (b *Base) OK() bool { return b.ok }

// IsAside reports whether the chunk attaches to the preceding main chunk.
func (b *Base) IsAside() bool { return b.aside }

// SetAside marks the chunk as an aside.
func (b *Base) SetAside(aside bool) { b.aside = aside }

// Invalidate marks the chunk unusable. It is still emitted.
func (b *Base) Invalidate() { b.ok = false }

// Asides returns the attached asides in attachment order.
func (b *Base) Asides() []Chunk { return b.asides }

// AddAside attaches an aside.
func (b *Base) AddAside(c Chunk) { b.asides = append(b.asides, c) }
