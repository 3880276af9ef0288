// Package mdpages builds pages from a directory of annotated Markdown
// documents.
//
// # Quick Start
//
// Create a builder and build a directory:
//
//	b, err := mdpages.NewBuilder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := b.Build(ctx, mdpages.Input{
//	    InputDir:     "pages",
//	    OutputDir:    "site",
//	    TemplatePath: "templates/page.html",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.MaxSeverity() == report.Error {
//	    os.Exit(1)
//	}
//
// # Documents
//
// A document is split into regions: Markdown paragraphs, fenced code, raw
// HTML blocks, and YAML blocks between "---" lines. Each region becomes a
// chunk. The first YAML block without a type sets page variables such as
// "status: draft"; typed YAML blocks are content plugins (figure, table,
// video, quiz, link, nav, lines, hint). A paragraph opening with ":name:"
// takes a paragraph class (":aside:", ":warning:", ":tip:", ...).
//
// Asides are rendered right after the chunk preceding them. HTML pages are
// grouped in sections starting at each first or second level heading.
//
// # Incremental Builds
//
// A target is rebuilt when it is missing, older than its source, or older
// than the template. Input.RebuildAll forces every document. When nothing
// is stale the build does no work and reports OutcomeNothingToDo.
//
// # Diagnostics
//
// Problems in a document never abort a build. They are collected in one
// report per document, with path and line, and the reports are returned
// sorted by severity. A build failed when any report holds an error.
//
// # Parallel Processing
//
// Several stale documents are built concurrently by a bounded number of
// goroutines (see ResolvePoolSize). The plugin registry and template text
// are read-only while a build runs; page variables are per document.
//
// # PDF Export
//
// With Input.PDF, each HTML page is also printed to PDF by headless Chrome
// (go-rod). Browsers are started lazily, one per concurrent job, and closed
// when the build ends.
package mdpages
