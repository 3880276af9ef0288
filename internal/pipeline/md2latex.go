package pipeline

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// latexEscaper escapes LaTeX special characters in a single pass.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeLaTeX escapes text for use outside verbatim environments.
func EscapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}

// latexRenderer renders a Goldmark AST as LaTeX.
// Node kinds without a registered function render nothing but their children.
type latexRenderer struct{}

func newLaTeXRenderer() renderer.NodeRenderer {
	return &latexRenderer{}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *latexRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.heading)
	reg.Register(ast.KindParagraph, r.paragraph)
	reg.Register(ast.KindTextBlock, r.textBlock)
	reg.Register(ast.KindText, r.text)
	reg.Register(ast.KindString, r.str)
	reg.Register(ast.KindEmphasis, r.emphasis)
	reg.Register(ast.KindCodeSpan, r.codeSpan)
	reg.Register(ast.KindLink, r.link)
	reg.Register(ast.KindAutoLink, r.autoLink)
	reg.Register(ast.KindImage, r.image)
	reg.Register(ast.KindList, r.list)
	reg.Register(ast.KindListItem, r.listItem)
	reg.Register(ast.KindBlockquote, r.blockquote)
	reg.Register(ast.KindFencedCodeBlock, r.codeBlock)
	reg.Register(ast.KindCodeBlock, r.codeBlock)
	reg.Register(ast.KindThematicBreak, r.thematicBreak)
	reg.Register(ast.KindHTMLBlock, r.skip)
	reg.Register(ast.KindRawHTML, r.skip)
}

var sectionCommands = map[int]string{
	1: `\section{`,
	2: `\subsection{`,
	3: `\subsubsection{`,
}

func (r *latexRenderer) heading(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("}\n\n")
		return ast.WalkContinue, nil
	}
	cmd, ok := sectionCommands[n.(*ast.Heading).Level]
	if !ok {
		cmd = `\paragraph{`
	}
	_, _ = w.WriteString(cmd)
	return ast.WalkContinue, nil
}

func (r *latexRenderer) paragraph(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) textBlock(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering && n.NextSibling() != nil {
		_, _ = w.WriteString("\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) text(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	t := n.(*ast.Text)
	_, _ = w.WriteString(EscapeLaTeX(string(t.Segment.Value(source))))
	switch {
	case t.HardLineBreak():
		_, _ = w.WriteString("\\\\\n")
	case t.SoftLineBreak():
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) str(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(EscapeLaTeX(string(n.(*ast.String).Value)))
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) emphasis(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_ = w.WriteByte('}')
		return ast.WalkContinue, nil
	}
	if n.(*ast.Emphasis).Level >= 2 {
		_, _ = w.WriteString(`\textbf{`)
	} else {
		_, _ = w.WriteString(`\emph{`)
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) codeSpan(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`\texttt{`)
	} else {
		_ = w.WriteByte('}')
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) link(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_ = w.WriteByte('}')
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`\href{` + escapeURL(string(n.(*ast.Link).Destination)) + `}{`)
	return ast.WalkContinue, nil
}

func (r *latexRenderer) autoLink(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`\url{` + escapeURL(string(n.(*ast.AutoLink).URL(source))) + `}`)
	}
	return ast.WalkSkipChildren, nil
}

func (r *latexRenderer) image(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`\includegraphics[width=\linewidth]{` + string(n.(*ast.Image).Destination) + `}`)
	}
	return ast.WalkSkipChildren, nil
}

func (r *latexRenderer) list(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	env := "itemize"
	if n.(*ast.List).IsOrdered() {
		env = "enumerate"
	}
	if entering {
		_, _ = w.WriteString(`\begin{` + env + "}\n")
	} else {
		_, _ = w.WriteString(`\end{` + env + "}\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) listItem(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`\item `)
	} else {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) blockquote(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("\\begin{quote}\n")
	} else {
		_, _ = w.WriteString("\\end{quote}\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) codeBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("\\begin{verbatim}\n")
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(line.Value(source))
	}
	_, _ = w.WriteString("\\end{verbatim}\n\n")
	return ast.WalkSkipChildren, nil
}

func (r *latexRenderer) thematicBreak(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("\\noindent\\rule{\\linewidth}{0.4pt}\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) skip(_ util.BufWriter, _ []byte, _ ast.Node, _ bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}

// escapeURL escapes the characters hyperref cannot take verbatim.
func escapeURL(u string) string {
	return strings.NewReplacer(`%`, `\%`, `#`, `\#`).Replace(u)
}
