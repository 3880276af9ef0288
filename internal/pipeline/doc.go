// Package pipeline implements the text-conversion collaborator used when
// rendering chunks, plus the page-level injection helpers.
//
// A Converter turns text from one Format into another:
//   - Markdown to HTML via Goldmark (GFM, footnotes, chroma highlighting)
//   - Markdown to LaTeX via a Goldmark AST renderer
//   - HTML to LaTeX via the x/net/html tokenizer
//   - any of the above via the Pandoc CLI as an alternate backend
//
// Conversions are pure functions of their input. Callers downgrade failures
// to diagnostics; nothing here writes files except Pandoc's temp input.
//
// Page-level helpers substitute assembled content into the page template,
// inject collected CSS, and rewrite relative paths before PDF export.
package pipeline
