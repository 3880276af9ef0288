// Package cast turns regions into chunks by dispatching on region kind and
// the plugin registry.
//
// Casting never fails. Problems become diagnostics: unknown paragraph tags
// degrade to plain Markdown, while YAML blocks that are not mappings or name
// an unknown type are dropped.
package cast

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/registry"
	"github.com/alnah/go-mdpages/internal/report"
	"github.com/alnah/go-mdpages/internal/yamlutil"
)

// Caster dispatches regions to chunk constructors.
type Caster struct {
	reg *registry.Registry
}

// New creates a Caster over a populated registry.
func New(reg *registry.Registry) *Caster {
	return &Caster{reg: reg}
}

// CastAll casts the regions of one document with a fresh variable store.
// Dropped regions are omitted from the result.
func (c *Caster) CastAll(regions []*chunker.Region, rep *report.Report) ([]chunk.Chunk, *chunk.PageVars) {
	vars := chunk.NewPageVars()
	chunks := make([]chunk.Chunk, 0, len(regions))
	for _, r := range regions {
		if ch := c.Cast(r, vars, rep); ch != nil {
			chunks = append(chunks, ch)
		}
	}
	return chunks, vars
}

// Cast builds the chunk for one region, or returns nil when the region is
// dropped.
func (c *Caster) Cast(r *chunker.Region, vars *chunk.PageVars, rep *report.Report) chunk.Chunk {
	switch r.Kind {
	case chunker.Markdown:
		return c.markdown(r, vars, rep)
	case chunker.YAML:
		return c.yaml(r, vars, rep)
	case chunker.HTML:
		return chunk.NewHTML(r, vars)
	case chunker.Code:
		if f, ok := c.lookup(registry.CodeLang, r.Lang()); ok {
			return f(r, chunk.Fields{}, vars, rep)
		}
		return chunk.NewCode(r, vars)
	default:
		tell(rep, r, report.Error, fmt.Sprintf("no idea what to do with region starting with %q", r.FirstLine()))
		return nil
	}
}

func (c *Caster) markdown(r *chunker.Region, vars *chunk.PageVars, rep *report.Report) chunk.Chunk {
	if r.Tag == "" || r.Tag == chunk.AsideTag {
		return chunk.NewMarkdown(r, vars)
	}
	if f, ok := c.lookup(registry.ParagraphClass, r.Tag); ok {
		return f(r, chunk.Fields{}, vars, rep)
	}
	tell(rep, r, report.Warning, fmt.Sprintf("unknown paragraph tag :%s:", r.Tag))
	return chunk.NewMarkdown(r, vars)
}

func (c *Caster) yaml(r *chunker.Region, vars *chunk.PageVars, rep *report.Report) chunk.Chunk {
	items, err := yamlutil.UnmarshalMapping([]byte(r.Content()))
	if err != nil {
		if errors.Is(err, yamlutil.ErrNotMapping) || errors.Is(err, yamlutil.ErrNilData) {
			tell(rep, r, report.Error, "YAML block is not a key/value mapping; block dropped")
		} else {
			tell(rep, r, report.Error, fmt.Sprintf("YAML block cannot be parsed; block dropped: %v", err))
		}
		return nil
	}

	var ch chunk.Chunk
	fields := chunk.NewFields(items)
	if !fields.Has(chunk.TypeKey) {
		ch = chunk.NewYAMLData(r, fields, vars, rep)
	} else {
		typ := fields.String(chunk.TypeKey)
		f, ok := c.lookup(registry.YAMLType, typ)
		if !ok {
			tell(rep, r, report.Error, fmt.Sprintf("unrecognized type %q; block dropped", typ))
			return nil
		}
		ch = f(r, fields, vars, rep)
	}

	if r.HasPostYAML() {
		if pr, ok := ch.(chunk.PostYAMLReader); !ok || !pr.UsesPostYAML() {
			tell(rep, r, report.Warning, fmt.Sprintf(
				"text right after the closing --- is ignored by the %s block; separate it with a blank line", ch.TypeTag()))
		}
	}
	return ch
}

func (c *Caster) lookup(ns registry.Namespace, key string) (registry.Factory, bool) {
	if c.reg == nil || key == "" {
		return nil, false
	}
	return c.reg.Lookup(ns, key)
}

func tell(rep *report.Report, r *chunker.Region, sev report.Severity, msg string) {
	if rep == nil {
		return
	}
	rep.Tell(msg, sev, r.Path, r.StartLine)
}
