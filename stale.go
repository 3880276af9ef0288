package mdpages

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpages/internal/pipeline"
)

// SourceExtension is the extension of source documents.
const SourceExtension = ".md"

// Job pairs a source document with the target file built from it.
type Job struct {
	Source string
	Target string
}

// Discover lists the source documents directly inside inputDir, in name
// order, each paired with its target in outputDir. Subdirectories are not
// searched.
func Discover(inputDir, outputDir string, target pipeline.Format) ([]Job, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}

	var jobs []Job
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != SourceExtension {
			continue
		}
		jobs = append(jobs, Job{
			Source: filepath.Join(inputDir, name),
			Target: TargetPath(outputDir, name, target),
		})
	}
	return jobs, nil
}

// TargetPath returns the target of a source: same stem, in outputDir, with
// the extension of the target format.
func TargetPath(outputDir, source string, target pipeline.Format) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+target.Extension())
}

// IsStale reports whether target must be rebuilt from source. It is when
// rebuildAll is set, when target does not exist, or when target is older
// than source or than the template. A missing template adds no condition.
func IsStale(source, target, template string, rebuildAll bool) (bool, error) {
	if rebuildAll {
		return true, nil
	}

	targetInfo, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	sourceInfo, err := os.Stat(source)
	if err != nil {
		return false, err
	}
	if targetInfo.ModTime().Before(sourceInfo.ModTime()) {
		return true, nil
	}

	if template == "" {
		return false, nil
	}
	templateInfo, err := os.Stat(template)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return targetInfo.ModTime().Before(templateInfo.ModTime()), nil
}
