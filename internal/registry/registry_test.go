package registry_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/registry"
	"github.com/alnah/go-mdpages/internal/report"
)

func factory(tag string) registry.Factory {
	return func(region *chunker.Region, _ chunk.Fields, vars *chunk.PageVars, _ *report.Report) chunk.Chunk {
		m := chunk.NewMarkdown(region, vars)
		m.ClassTag = tag
		return m
	}
}

func build(t *testing.T, f registry.Factory) chunk.Chunk {
	t.Helper()
	r := chunker.NewRegion([]string{"x"}, chunker.Markdown, 1, "")
	return f(r, chunk.Fields{}, chunk.NewPageVars(), nil)
}

func TestRegistry_LookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	r := registry.New(nil)
	require.NoError(t, r.Register(registry.YAMLType, "Figure", factory("figure")))

	f, ok := r.Lookup(registry.YAMLType, "FIGURE")
	require.True(t, ok)
	assert.Equal(t, "markdown:figure", build(t, f).TypeTag())

	_, ok = r.Lookup(registry.YAMLType, "table")
	assert.False(t, ok)
}

func TestRegistry_NamespacesAreIndependent(t *testing.T) {
	t.Parallel()

	r := registry.New(nil)
	require.NoError(t, r.Register(registry.YAMLType, "hint", factory("yaml")))
	require.NoError(t, r.Register(registry.ParagraphClass, "hint", factory("para")))

	fy, _ := r.Lookup(registry.YAMLType, "hint")
	fp, _ := r.Lookup(registry.ParagraphClass, "hint")
	assert.Equal(t, "markdown:yaml", build(t, fy).TypeTag())
	assert.Equal(t, "markdown:para", build(t, fp).TypeTag())
	_, ok := r.Lookup(registry.CodeLang, "hint")
	assert.False(t, ok)
}

func TestRegistry_OverwriteWarnsAndLastWins(t *testing.T) {
	t.Parallel()

	rep := report.New("")
	r := registry.New(rep)
	require.NoError(t, r.Register(registry.ParagraphClass, "tip", factory("first")))
	require.NoError(t, r.Register(registry.ParagraphClass, "tip", factory("second")))

	f, _ := r.Lookup(registry.ParagraphClass, "tip")
	assert.Equal(t, "markdown:second", build(t, f).TypeTag())
	assert.Equal(t, report.Warning, rep.MaxSeverity())
	assert.Equal(t, 1, rep.Len())
}

func TestRegistry_RegisterErrors(t *testing.T) {
	t.Parallel()

	r := registry.New(nil)
	assert.ErrorIs(t, r.Register(registry.CodeLang, "  ", factory("x")), registry.ErrEmptyKey)
	assert.ErrorIs(t, r.Register(registry.CodeLang, "go", nil), registry.ErrNilFactory)

	r.Freeze()
	assert.True(t, r.Frozen())
	err := r.Register(registry.CodeLang, "go", factory("x"))
	assert.True(t, errors.Is(err, registry.ErrFrozen))
}

func TestRegistry_KeysSorted(t *testing.T) {
	t.Parallel()

	r := registry.New(nil)
	for _, k := range []string{"video", "figure", "quiz"} {
		require.NoError(t, r.Register(registry.YAMLType, k, factory(k)))
	}
	assert.Equal(t, []string{"figure", "quiz", "video"}, r.Keys(registry.YAMLType))
	assert.Empty(t, r.Keys(registry.CodeLang))
}

func TestRegistry_ConcurrentLookupAfterFreeze(t *testing.T) {
	t.Parallel()

	r := registry.New(nil)
	require.NoError(t, r.Register(registry.YAMLType, "figure", factory("figure")))
	r.Freeze()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := r.Lookup(registry.YAMLType, "figure")
			assert.True(t, ok)
		}()
	}
	wg.Wait()
}
