package mdpages

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/alnah/go-mdpages/internal/assets"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/report"
)

// loadTemplate reads the page template for a build. A missing file is a
// warning: the embedded default for the target format is used instead.
// The returned text is shared read-only by all jobs of the build.
func (b *Builder) loadTemplate(path string, target pipeline.Format, setup *report.Report) (string, error) {
	if path == "" {
		return assets.LoadTemplate(assets.DefaultTemplate, target.Extension())
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided template path
	if errors.Is(err, fs.ErrNotExist) {
		setup.Tell(fmt.Sprintf("template %s not found; using the built-in %s template", path, target), report.Warning, path, 0)
		b.logger.Warn("template fallback", "template", path, "target", string(target))
		return assets.LoadTemplate(assets.DefaultTemplate, target.Extension())
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRead, err)
	}

	tmpl := string(data)
	if !strings.Contains(tmpl, pipeline.ContentPlaceholder) {
		setup.Tell(fmt.Sprintf("template has no %s placeholder; content is appended at the end", pipeline.ContentPlaceholder),
			report.Warning, path, 0)
	}
	return tmpl, nil
}
