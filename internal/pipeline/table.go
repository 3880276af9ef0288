package pipeline

import (
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ErrNoTable is returned when Markdown text holds no pipe table.
var ErrNoTable = errors.New("no table found")

var tableParser = goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()

// ParseTable extracts the cells of the first pipe table in Markdown text.
// The header row comes first. Cell text is returned without inline markup.
func ParseTable(md string) ([][]string, error) {
	source := []byte(md)
	doc := tableParser.Parse(text.NewReader(source))

	var (
		rows  [][]string
		found bool
	)
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case east.KindTable:
			if found {
				return ast.WalkSkipChildren, nil
			}
			found = true
		case east.KindTableHeader, east.KindTableRow:
			var row []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				row = append(row, strings.TrimSpace(plainText(c, source)))
			}
			rows = append(rows, row)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoTable
	}
	return rows, nil
}

// plainText concatenates the text leaves below n.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
