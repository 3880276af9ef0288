package mdpages

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdpages/internal/fileutil"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/process"
)

// PDFRenderer renders a local HTML file to PDF. Renderers are used by one
// job at a time.
type PDFRenderer interface {
	RenderFile(ctx context.Context, path string) ([]byte, error)
	Close() error
}

var _ PDFRenderer = (*rodRenderer)(nil)

// PDF page dimensions in inches (US Letter format).
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11
	marginInches      = 0.5
)

// rodRenderer prints pages with a headless Chrome driven by go-rod. The
// browser starts on the first RenderFile call.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// browserSettings reads the launcher settings from the environment:
// ROD_BROWSER_BIN selects a pre-installed browser, and the sandbox is
// disabled with ROD_NO_SANDBOX=1, in CI, or with a custom binary (Docker
// images ship Chrome that way).
func browserSettings(getenv func(string) string) (bin string, noSandbox bool) {
	bin = getenv("ROD_BROWSER_BIN")
	noSandbox = getenv("ROD_NO_SANDBOX") == "1" || getenv("CI") == "true" || bin != ""
	return bin, noSandbox
}

// ensureBrowser lazily launches and connects to the browser. Rod downloads
// Chromium on first use when no browser is found.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	bin, noSandbox := browserSettings(os.Getenv)
	if bin != "" {
		l = l.Bin(bin)
	}
	l = l.NoSandbox(noSandbox)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources, killing the browser process group so
// that no renderer helper outlives the build.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.kill()
	return err
}

func (r *rodRenderer) kill() {
	if r.launcher == nil {
		return
	}
	if pid := r.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	r.launcher.Kill()
	r.launcher = nil
}

// RenderFile loads a local HTML file in headless Chrome and prints it.
// The page load is bounded by the renderer timeout or the ctx deadline,
// whichever is sooner; canceling ctx aborts the browser calls.
func (r *rodRenderer) RenderFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	fileURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: fileURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	stream, err := page.PDF(pdfOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// pdfOptions returns the print settings: US Letter, half-inch margins,
// backgrounds printed so callouts and code keep their colors.
func pdfOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// PDFPath returns the PDF written next to an HTML target.
func PDFPath(target string) string {
	return strings.TrimSuffix(target, filepath.Ext(target)) + ".pdf"
}

// exportPDF renders a built page to PDF next to its target. Relative
// references in the page resolve against sourceDir, where the document's
// images live, so the page is loaded from a temp file with absolute paths.
func exportPDF(ctx context.Context, r PDFRenderer, page, sourceDir, target string) error {
	rewritten, err := pipeline.RewriteRelativePaths(page, sourceDir)
	if err != nil {
		return fmt.Errorf("%w: rewriting relative paths: %v", ErrPDFGeneration, err)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(rewritten, "html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	data, err := r.RenderFile(ctx, tmpPath)
	if err != nil {
		return err
	}

	if err := os.WriteFile(PDFPath(target), data, filePerm); err != nil { // #nosec G306 -- exported next to the page
		return fmt.Errorf("%w: %v", ErrTargetWrite, err)
	}
	return nil
}
