// Package plugins provides the built-in content plugins.
//
// Each plugin is a chunk variant that embeds one of the core chunk types and
// overrides Render. RegisterDefaults installs them in a registry before it
// is frozen.
package plugins

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/registry"
	"github.com/alnah/go-mdpages/internal/report"
)

// registration binds a factory to a namespace key.
type registration struct {
	ns  registry.Namespace
	key string
	f   registry.Factory
}

func defaults() []registration {
	return []registration{
		{registry.YAMLType, "figure", newFigure},
		{registry.YAMLType, "table", newTable},
		{registry.YAMLType, "video", newVideo},
		{registry.YAMLType, "quiz", newQuiz},
		{registry.YAMLType, "link", newLink},
		{registry.YAMLType, "nav", newNav},
		{registry.YAMLType, "lines", newLines},
		{registry.YAMLType, "hint", newHint},
		{registry.ParagraphClass, "warning", callout("Warning")},
		{registry.ParagraphClass, "tip", callout("Tip")},
		{registry.ParagraphClass, "goals", callout("Goals")},
		{registry.ParagraphClass, "note", callout("Note")},
		{registry.CodeLang, "mermaid", newMermaid},
	}
}

// RegisterDefaults registers every built-in plugin.
func RegisterDefaults(r *registry.Registry) error {
	for _, reg := range defaults() {
		if err := r.Register(reg.ns, reg.key, reg.f); err != nil {
			return fmt.Errorf("registering %s/%s: %w", reg.ns, reg.key, err)
		}
	}
	return nil
}

func tell(rep *report.Report, region *chunker.Region, sev report.Severity, msg string) {
	if rep == nil {
		return
	}
	rep.Tell(msg, sev, region.Path, region.StartLine)
}

// escape escapes text for HTML content and attribute values.
func escape(s string) string {
	return html.EscapeString(s)
}

// inline converts a short Markdown fragment, dropping the paragraph wrapper
// the HTML converter puts around it.
func inline(ctx context.Context, rc *chunk.RenderContext, md string) (string, error) {
	out, err := rc.Convert(ctx, md, pipeline.FormatMarkdown)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if rc.Target == pipeline.FormatHTML && strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") &&
		strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}

// intField reads a whole number from a YAML value.
func intField(f chunk.Fields, key string) (int, bool) {
	v, ok := f.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

// sidenote renders a caption as an aside anchored next to the block.
func sidenote(b *strings.Builder, name, caption string) {
	fmt.Fprintf(b, "<span name=\"%s\">&nbsp;</span>\n", escape(name))
	fmt.Fprintf(b, "<aside name=\"%s\"><p>%s</p></aside>\n", escape(name), caption)
}
