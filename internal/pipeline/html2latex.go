package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// latexTag maps an HTML element to the LaTeX text written at its start and end.
type latexTag struct {
	open, close string
}

var latexTags = map[string]latexTag{
	"p":          {"", "\n\n"},
	"div":        {"", "\n\n"},
	"section":    {"", "\n\n"},
	"h1":         {`\section{`, "}\n\n"},
	"h2":         {`\subsection{`, "}\n\n"},
	"h3":         {`\subsubsection{`, "}\n\n"},
	"h4":         {`\paragraph{`, "}\n\n"},
	"strong":     {`\textbf{`, "}"},
	"b":          {`\textbf{`, "}"},
	"em":         {`\emph{`, "}"},
	"i":          {`\emph{`, "}"},
	"code":       {`\texttt{`, "}"},
	"mark":       {`\hl{`, "}"},
	"ul":         {"\\begin{itemize}\n", "\\end{itemize}\n\n"},
	"ol":         {"\\begin{enumerate}\n", "\\end{enumerate}\n\n"},
	"li":         {`\item `, "\n"},
	"blockquote": {"\\begin{quote}\n", "\\end{quote}\n\n"},
	"figcaption": {`\par{\small `, "}\n\n"},
}

// skippedTags have their content dropped entirely.
var skippedTags = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
	"iframe": true,
}

// HTMLToLaTeX converts an HTML fragment to LaTeX using a token stream.
// Unknown elements are dropped and their text kept.
func HTMLToLaTeX(fragment string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var (
		b       strings.Builder
		skip    int
		inPre   bool
		inLink  []bool
		tagName string
	)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: %v", ErrLaTeXConversion, err)
			}
			return strings.TrimSpace(b.String()), nil

		case html.TextToken:
			if skip > 0 {
				continue
			}
			text := string(z.Text())
			if inPre {
				b.WriteString(text)
			} else {
				b.WriteString(EscapeLaTeX(text))
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tagName = string(name)
			if skippedTags[tagName] {
				if tt == html.StartTagToken {
					skip++
				}
				continue
			}
			if skip > 0 {
				continue
			}
			attrs := readAttrs(z, hasAttr)
			switch tagName {
			case "br":
				b.WriteString("\\\\\n")
			case "hr":
				b.WriteString("\\noindent\\rule{\\linewidth}{0.4pt}\n\n")
			case "img":
				b.WriteString(`\includegraphics[width=\linewidth]{` + attrs["src"] + "}\n")
			case "pre":
				inPre = true
				b.WriteString("\\begin{verbatim}\n")
			case "a":
				href, ok := attrs["href"]
				inLink = append(inLink, ok)
				if ok {
					b.WriteString(`\href{` + escapeURL(href) + `}{`)
				}
			default:
				if tag, ok := latexTags[tagName]; ok && !(inPre && tagName == "code") {
					b.WriteString(tag.open)
				}
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tagName = string(name)
			if skippedTags[tagName] {
				if skip > 0 {
					skip--
				}
				continue
			}
			if skip > 0 {
				continue
			}
			switch tagName {
			case "pre":
				inPre = false
				b.WriteString("\n\\end{verbatim}\n\n")
			case "a":
				if n := len(inLink); n > 0 {
					if inLink[n-1] {
						b.WriteString("}")
					}
					inLink = inLink[:n-1]
				}
			default:
				if tag, ok := latexTags[tagName]; ok && !(inPre && tagName == "code") {
					b.WriteString(tag.close)
				}
			}
		}
	}
}

func readAttrs(z *html.Tokenizer, more bool) map[string]string {
	attrs := make(map[string]string)
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		attrs[string(key)] = string(val)
	}
	return attrs
}
