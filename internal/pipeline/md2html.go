package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Sentinel errors for Goldmark conversions.
var (
	ErrHTMLConversion  = errors.New("HTML conversion failed")
	ErrLaTeXConversion = errors.New("LaTeX conversion failed")
)

// Goldmark converts text in-process using goldmark (pure Go).
type Goldmark struct {
	html  goldmark.Markdown
	latex goldmark.Markdown
	pre   MarkdownPreprocessor
}

// NewGoldmark creates a Goldmark converter with GFM extensions and syntax
// highlighting for HTML output.
func NewGoldmark() *Goldmark {
	htmlMD := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // pairs with HighlightCSS
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // anchors for headings
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(), // inline HTML in prose is kept as written
		),
	)

	latexMD := goldmark.New(
		goldmark.WithRenderer(renderer.NewRenderer(
			renderer.WithNodeRenderers(util.Prioritized(newLaTeXRenderer(), 1000)),
		)),
	)

	return &Goldmark{html: htmlMD, latex: latexMD, pre: &CommonMarkPreprocessor{}}
}

// Convert implements Converter.
func (c *Goldmark) Convert(ctx context.Context, text string, from, to Format) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch {
	case from == to:
		return text, nil
	case from == FormatMarkdown && to == FormatHTML:
		return c.toHTML(ctx, text)
	case from == FormatMarkdown && to == FormatLaTeX:
		return c.toLaTeX(ctx, text)
	case from == FormatHTML && to == FormatLaTeX:
		return HTMLToLaTeX(text)
	default:
		return "", fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, from, to)
	}
}

// toHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *Goldmark) toHTML(ctx context.Context, content string) (string, error) {
	content = c.pre.PreprocessMarkdown(ctx, content)

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.html.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		out := ConvertMarkPlaceholders(buf.String())
		done <- result{html: strings.TrimRight(out, "\n")}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// toLaTeX converts Markdown content to a LaTeX fragment.
func (c *Goldmark) toLaTeX(ctx context.Context, content string) (string, error) {
	content = c.pre.PreprocessMarkdown(ctx, content)

	var buf bytes.Buffer
	if err := c.latex.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrLaTeXConversion, err)
	}
	out := strings.NewReplacer(MarkStartPlaceholder, `\hl{`, MarkEndPlaceholder, "}").Replace(buf.String())
	return strings.TrimRight(out, "\n"), nil
}
