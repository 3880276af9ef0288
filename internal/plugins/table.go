package plugins

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-mdpages/internal/assets"
	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/report"
)

var (
	errFileMissing = errors.New("file does not exist")
	errEmptyTable  = errors.New("table is empty")
)

// Table is a table loaded from a CSV or Markdown file next to the document.
type Table struct {
	*chunk.YAML
	File    string
	Class   string
	Caption string
	Rows    [][]string // header row first
}

func newTable(region *chunker.Region, fields chunk.Fields, vars *chunk.PageVars, rep *report.Report) chunk.Chunk {
	t := &Table{
		YAML: chunk.NewYAML(region, fields, vars, rep, chunk.Schema{
			Required: []string{"file"},
			Optional: []string{"class", "caption"},
		}),
		File:    fields.String("file"),
		Class:   fields.String("class"),
		Caption: fields.String("caption"),
	}
	if !t.OK() {
		return t
	}

	rows, err := readTable(filepath.Join(filepath.Dir(region.Path), t.File))
	if err != nil {
		tell(rep, region, report.Error, fmt.Sprintf("table file %s: %v", t.File, err))
		t.Invalidate()
		return t
	}
	t.Rows = rows
	return t
}

// readTable loads rows from a .csv file or the first pipe table of any
// other file.
func readTable(path string) ([][]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is relative to the document being built
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errFileMissing
		}
		return nil, err
	}

	var rows [][]string
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		r := csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		if rows, err = r.ReadAll(); err != nil {
			return nil, err
		}
	} else if rows, err = pipeline.ParseTable(string(data)); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errEmptyTable
	}
	return rows, nil
}

// columns returns the width of the widest row.
func (t *Table) columns() int {
	n := 0
	for _, row := range t.Rows {
		n = max(n, len(row))
	}
	return n
}

// Render implements chunk.Chunk.
func (t *Table) Render(ctx context.Context, rc *chunk.RenderContext) (string, error) {
	switch rc.Target {
	case pipeline.FormatHTML:
		return t.html(ctx, rc)
	case pipeline.FormatLaTeX:
		return t.latex(ctx, rc)
	default:
		return "", chunk.ErrNotRenderable
	}
}

func (t *Table) html(ctx context.Context, rc *chunk.RenderContext) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, t.node()); err != nil {
		return "", err
	}

	if t.Caption != "" {
		caption, err := inline(ctx, rc, t.Caption)
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		sidenote(&b, t.File, caption)
		return strings.TrimRight(b.String(), "\n"), nil
	}
	return b.String(), nil
}

// node builds the table element. Rows are padded to the widest row and the
// class, when set, is carried as an attribute of the table element.
func (t *Table) node() *html.Node {
	table := element(atom.Table)
	if t.Class != "" {
		table.Attr = append(table.Attr, html.Attribute{Key: "class", Val: t.Class})
	}

	cols := t.columns()
	row := func(parent *html.Node, cells []string, cell atom.Atom) {
		tr := element(atom.Tr)
		for i := 0; i < cols; i++ {
			c := element(cell)
			if i < len(cells) && cells[i] != "" {
				c.AppendChild(&html.Node{Type: html.TextNode, Data: cells[i]})
			}
			tr.AppendChild(c)
		}
		parent.AppendChild(tr)
	}

	head, body := element(atom.Thead), element(atom.Tbody)
	row(head, t.Rows[0], atom.Th)
	for _, r := range t.Rows[1:] {
		row(body, r, atom.Td)
	}
	table.AppendChild(head)
	table.AppendChild(body)
	return table
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func (t *Table) latex(ctx context.Context, rc *chunk.RenderContext) (string, error) {
	cols := t.columns()

	var b strings.Builder
	b.WriteString("\\begin{table}[htbp]\n\\centering\n")
	fmt.Fprintf(&b, "\\begin{tabular}{%s}\n\\hline\n", strings.Repeat("l", cols))
	for i, r := range t.Rows {
		cells := make([]string, cols)
		for j := range cells {
			if j < len(r) {
				cells[j] = pipeline.EscapeLaTeX(r[j])
			}
		}
		b.WriteString(strings.Join(cells, " & "))
		b.WriteString(" \\\\\n")
		if i == 0 {
			b.WriteString("\\hline\n")
		}
	}
	b.WriteString("\\hline\n\\end{tabular}\n")

	if t.Caption != "" {
		caption, err := inline(ctx, rc, t.Caption)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\\caption{%s}\n", caption)
	}
	b.WriteString("\\end{table}")
	return b.String(), nil
}

// CSS implements chunk.Styler.
func (t *Table) CSS() string { return assets.MustStyle("table") }
