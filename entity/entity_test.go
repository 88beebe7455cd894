package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredefinedEntities(t *testing.T) {
	table := Predefined()

	cases := map[string]string{
		"amp":  "&",
		"lt":   "<",
		"gt":   ">",
		"apos": "'",
		"quot": "\"",
	}
	for name, want := range cases {
		got, ok := table.Lookup(name)
		require.True(t, ok, "expected %s to be defined", name)
		assert.Equal(t, want, got)
	}
}

func TestResolveNamedUndefined(t *testing.T) {
	table := Predefined()
	_, err := table.ResolveNamed("bogus")
	require.Error(t, err)
	assert.Equal(t, InvalidCode, err.(*ResolveError).Code)
}

func TestResolveNumericDecimal(t *testing.T) {
	got, err := ResolveNumeric("65", false)
	require.NoError(t, err)
	assert.Equal(t, "A", got)
}

func TestResolveNumericHex(t *testing.T) {
	got, err := ResolveNumeric("41", true)
	require.NoError(t, err)
	assert.Equal(t, "A", got)
}

func TestResolveNumericInvalidCodepoint(t *testing.T) {
	_, err := ResolveNumeric("FFFE", true)
	require.Error(t, err)
	assert.Equal(t, InvalidNumber, err.(*ResolveError).Code)
}

func TestResolveNumericSurrogate(t *testing.T) {
	_, err := ResolveNumeric("D800", true)
	require.Error(t, err)
}

func TestResolveNumericOutOfRange(t *testing.T) {
	_, err := ResolveNumeric("110000", true)
	require.Error(t, err)
}

func TestDefineOverridesLookup(t *testing.T) {
	table := New()
	table.Define("copy", "(c)")
	table.Define("copy", "©")
	got, ok := table.Lookup("copy")
	require.True(t, ok)
	assert.Equal(t, "©", got)
}
