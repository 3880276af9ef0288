// Package arrange attaches aside chunks to the main chunk preceding them.
package arrange

import (
	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/report"
)

// Arrange returns the main chunks in order, each carrying the asides that
// followed it. An aside with no preceding main chunk is kept as a main
// entry and reported. Every input chunk appears exactly once in the
// result, at the top level or under one main chunk.
func Arrange(chunks []chunk.Chunk, rep *report.Report) []chunk.Chunk {
	out := make([]chunk.Chunk, 0, len(chunks))
	var current chunk.Chunk

	for _, c := range chunks {
		if !c.IsAside() {
			out = append(out, c)
			current = c
			continue
		}
		if current != nil {
			current.AddAside(c)
			continue
		}
		if rep != nil {
			r := c.Region()
			rep.Tell("aside cannot be first element", report.Warning, r.Path, r.StartLine)
		}
		out = append(out, c)
	}
	return out
}

// Flatten lists mains and their asides in rendering order.
func Flatten(chunks []chunk.Chunk) []chunk.Chunk {
	var out []chunk.Chunk
	for _, c := range chunks {
		out = append(out, c)
		out = append(out, c.Asides()...)
	}
	return out
}
