package loader

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFSCollectsXMLFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/a.xml":      {Data: []byte(`<a/>`)},
		"docs/b.xml":      {Data: []byte(`<b/>`)},
		"docs/c.json":     {Data: []byte(`{}`)},
		"docs/sub/d.xml":  {Data: []byte(`<d/>`)},
	}

	l := New()
	require.NoError(t, l.AddFS(fsys))

	result := l.Load()
	require.True(t, result.OK())
	assert.Len(t, result.Documents, 3)
	assert.Contains(t, result.Documents, "docs/a")
	assert.Contains(t, result.Documents, "docs/b")
	assert.Contains(t, result.Documents, "docs/sub/d")
}

func TestLoadIsolatesFailures(t *testing.T) {
	l := New()
	l.AddDocument("good", `<a/>`)
	l.AddDocument("bad", `<a><b></a>`)

	result := l.Load()
	assert.False(t, result.OK())
	assert.Contains(t, result.Documents, "good")
	assert.Contains(t, result.Errors, "bad")
	assert.NotContains(t, result.Errors, "good")
}

func TestAddDocumentOverwrites(t *testing.T) {
	l := New()
	l.AddDocument("x", `<a/>`)
	l.AddDocument("x", `<b/>`)

	result := l.Load()
	require.True(t, result.OK())
	assert.Equal(t, "b", result.Documents["x"].Root.Name)
}
