package discovery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/home-lang/den/concurrency"
)

func TestSplitPathList(t *testing.T) {
	sep := string(os.PathListSeparator)
	got := SplitPathList(strings.Join([]string{"/usr/bin", "", "/bin", "/usr/bin"}, sep))
	assert.Equal(t, []string{"/usr/bin", "/bin"}, got, "empty and duplicate segments are dropped")

	assert.Nil(t, SplitPathList(""))
}

func TestBuildIndex_PrecedenceFollowsDirOrder(t *testing.T) {
	pool := concurrency.NewPool(4)
	defer pool.Shutdown()

	first := t.TempDir()
	second := t.TempDir()
	firstTool := writeFile(t, first, "tool", 0755)
	writeFile(t, second, "tool", 0755)
	other := writeFile(t, second, "other", 0755)
	writeFile(t, second, "notexec", 0644)

	idx := BuildIndex(pool, 8, []string{first, second})

	require.Equal(t, 2, idx.Len())

	path, ok := idx.Lookup("tool")
	require.True(t, ok)
	assert.Equal(t, firstTool, path, "earlier PATH directory must win")

	path, ok = idx.Lookup("other")
	require.True(t, ok)
	assert.Equal(t, other, path)

	_, ok = idx.Lookup("notexec")
	assert.False(t, ok, "non-executable files are not commands")

	assert.Equal(t, []string{"other", "tool"}, idx.Names())
}

func TestBuildIndex_SkipsMissingDirs(t *testing.T) {
	pool := concurrency.NewPool(2)
	defer pool.Shutdown()

	dir := t.TempDir()
	tool := writeFile(t, dir, "tool", 0755)

	idx := BuildIndex(pool, 4, []string{filepath.Join(dir, "missing"), dir})

	path, ok := idx.Lookup("tool")
	require.True(t, ok)
	assert.Equal(t, tool, path)
}
