package pipeline

import (
	"bytes"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightStyle is the chroma style used for code block stylesheets.
const HighlightStyle = "github"

// HighlightCSS returns the stylesheet matching the class-based markup
// produced for fenced code. Computed once.
var HighlightCSS = sync.OnceValue(func() string {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(HighlightStyle)); err != nil {
		return ""
	}
	return buf.String()
})
