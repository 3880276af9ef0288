package mdpages

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/alnah/go-mdpages/internal/report"
)

// File permissions for build outputs.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// readSource reads a source document. A leading byte order mark is
// removed; UTF-16 documents carrying one are decoded to UTF-8.
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the input directory listing
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceRead, err)
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSourceRead, path, err)
	}
	return string(decoded), nil
}

// firstInvalidSequence returns the first byte sequence of content that is
// not valid UTF-8, or nil.
func firstInvalidSequence(content string) []byte {
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRuneInString(content[i:])
		if r == utf8.RuneError && size <= 1 {
			return []byte(content[i : i+1])
		}
		i += size
	}
	return nil
}

// encodeUTF8 validates content as UTF-8. Invalid content is converted a
// second time with replacement characters; line is then the first line
// holding an invalid sequence.
func encodeUTF8(content string) (out string, line int, err error) {
	if _, _, err := transform.String(encoding.UTF8Validator, content); err == nil {
		return content, 0, nil
	}

	line = firstInvalidLine(content)
	out, _, err = transform.String(unicode.UTF8.NewDecoder(), content)
	return out, line, err
}

// firstInvalidLine returns the 1-based number of the first line that is not
// valid UTF-8, or 0.
func firstInvalidLine(content string) int {
	for i, l := range strings.Split(content, "\n") {
		if !utf8.ValidString(l) {
			return i + 1
		}
	}
	return 0
}

// writeTarget writes content to path, creating the parent directory. An
// encoding failure is reported as an error against the target, naming the
// offending bytes, and the page is written once more with the lossy
// encoding.
func writeTarget(path, content string, rep *report.Report) error {
	out, line, err := encodeUTF8(content)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrTargetWrite, path, err)
	}
	if line > 0 {
		msg := fmt.Sprintf("encoding error when writing file: invalid UTF-8 byte %q; written with replacement characters",
			firstInvalidSequence(content))
		rep.Tell(msg, report.Error, path, line)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputDir, err)
	}
	if err := os.WriteFile(path, []byte(out), filePerm); err != nil { // #nosec G306 -- pages are meant to be served
		return fmt.Errorf("%w: %v", ErrTargetWrite, err)
	}
	return nil
}
