package mdpages

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-mdpages/internal/chunk"
)

// Recode rebuilds source text from chunks in source order: each chunk's
// recoded block, trimmed of surrounding blank lines, separated from the
// next by one blank line.
func Recode(chunks []chunk.Chunk) string {
	blocks := make([]string, 0, len(chunks))
	for _, c := range chunks {
		block := strings.Trim(c.Recode(), "\n")
		if strings.TrimSpace(block) == "" {
			continue
		}
		blocks = append(blocks, block)
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// reformatSource rewrites source with its recoded text when it differs.
// The target's times are then moved past the source so that the rewrite
// alone does not make the target stale.
func reformatSource(source, target string, chunks []chunk.Chunk, original string) (bool, error) {
	recoded := Recode(chunks)
	if recoded == original {
		return false, nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	if err := os.WriteFile(source, []byte(recoded), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("reformatting %s: %w", source, err)
	}

	now := time.Now()
	if err := os.Chtimes(target, now, now); err != nil {
		return true, fmt.Errorf("%w: %v", ErrTargetWrite, err)
	}
	return true, nil
}
