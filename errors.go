package mdpages

import "errors"

// Sentinel errors for build operations.
//
// Problems inside a document never surface as errors: they are recorded as
// diagnostics in the document report. These errors cover the build setup
// and the PDF export that runs after a page is written.
var (
	ErrInputDir      = errors.New("input directory not readable")
	ErrOutputDir     = errors.New("output directory not writable")
	ErrInvalidTarget = errors.New("invalid target format")
	ErrTemplateRead  = errors.New("template not readable")
	ErrSourceRead    = errors.New("source not readable")
	ErrTargetWrite   = errors.New("target not writable")
	ErrRegistry      = errors.New("plugin registration failed")

	// PDF export errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
