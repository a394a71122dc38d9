package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileExcludesNothing(t *testing.T) {
	m, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.False(t, m.Excluded("anything.go"))
}

func TestLoadPatterns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".loupeignore"), []byte(`
# generated code
*_gen.go
vendor
`), 0o644))

	m, err := Load(dir)
	require.NoError(t, err)

	assert.True(t, m.Excluded("types_gen.go"))
	assert.True(t, m.Excluded("vendor"))
	assert.True(t, m.Excluded(filepath.Join("vendor", "lib.go")), "children of ignored directories are excluded")
	assert.False(t, m.Excluded("main.go"))
}

func TestNegatedPattern(t *testing.T) {
	m, err := New([]string{"*.go", "!keep.go"})
	require.NoError(t, err)

	assert.True(t, m.Excluded("skip.go"))
	assert.False(t, m.Excluded("keep.go"))
}

func TestNilMatcher(t *testing.T) {
	var m *Matcher
	assert.False(t, m.Excluded("anything"))
}
