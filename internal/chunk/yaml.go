package chunk

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/report"
	"github.com/alnah/go-mdpages/internal/yamlutil"
)

// TypeKey selects the plugin of a typed YAML block.
const TypeKey = "type"

// Schema declares the keys a typed YAML block accepts.
type Schema struct {
	Required []string
	Optional []string
}

// allows reports whether key is declared or is the type key.
func (s Schema) allows(key string) bool {
	if key == TypeKey {
		return true
	}
	for _, k := range s.Required {
		if k == key {
			return true
		}
	}
	for _, k := range s.Optional {
		if k == key {
			return true
		}
	}
	return false
}

// YAML is a typed YAML block. Content plugins embed it and override Render.
type YAML struct {
	Base
	Fields Fields
	Type   string
	Schema Schema
}

// NewYAML builds a typed block and validates fields against schema.
// A missing required key is an error and makes the chunk unusable; an
// undeclared key is a warning. The chunk is returned either way.
func NewYAML(region *chunker.Region, fields Fields, vars *PageVars, rep *report.Report, schema Schema) *YAML {
	y := &YAML{
		Base:   NewBase(region, vars),
		Fields: fields,
		Type:   strings.ToLower(fields.String(TypeKey)),
		Schema: schema,
	}

	for _, key := range schema.Required {
		if !fields.Has(key) {
			tell(rep, region, report.Error, fmt.Sprintf("%s block misses required key %q", y.label(), key))
			y.Invalidate()
		}
	}
	for _, key := range fields.Keys() {
		if !schema.allows(key) {
			tell(rep, region, report.Warning, fmt.Sprintf("%s block has unknown key %q", y.label(), key))
		}
	}
	return y
}

func (y *YAML) label() string {
	if y.Type == "" {
		return "YAML"
	}
	return y.Type
}

// TypeTag implements Chunk.
func (y *YAML) TypeTag() string {
	if y.Type == "" {
		return "yaml"
	}
	return y.Type
}

// Render implements Chunk. Plain typed blocks have no rendering.
func (y *YAML) Render(context.Context, *RenderContext) (string, error) {
	return "", ErrNotRenderable
}

// Recode re-serializes the block with its fences and post-YAML prose.
func (y *YAML) Recode() string {
	return recodeYAML(y.Fields, y.Region())
}

// Post returns the prose following the closing fence.
func (y *YAML) Post() string {
	return y.Region().PostYAMLContent()
}

// YAMLData is an untyped YAML block. It only feeds page variables.
type YAMLData struct {
	Base
	Fields Fields
}

// NewYAMLData builds a data block and merges its fields into vars.
func NewYAMLData(region *chunker.Region, fields Fields, vars *PageVars, rep *report.Report) *YAMLData {
	d := &YAMLData{Base: NewBase(region, vars), Fields: fields}
	vars.Merge(fields, region.Path, region.StartLine, rep)
	return d
}

// TypeTag implements Chunk.
func (d *YAMLData) TypeTag() string { return "data" }

// Render implements Chunk. Data blocks never produce output.
func (d *YAMLData) Render(context.Context, *RenderContext) (string, error) {
	return "", nil
}

// Recode implements Chunk.
func (d *YAMLData) Recode() string {
	return recodeYAML(d.Fields, d.Region())
}

func recodeYAML(fields Fields, region *chunker.Region) string {
	var b strings.Builder
	b.WriteString("---\n")
	if data, err := yamlutil.MarshalMapping(fields.Items()); err == nil {
		b.Write(data)
	} else {
		b.WriteString(region.Content())
		b.WriteString("\n")
	}
	b.WriteString("---")
	if region.HasPostYAML() {
		b.WriteString("\n")
		b.WriteString(region.PostYAMLContent())
	}
	return b.String()
}

func tell(rep *report.Report, region *chunker.Region, sev report.Severity, msg string) {
	if rep == nil {
		return
	}
	rep.Tell(msg, sev, region.Path, region.StartLine)
}
