package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentAndAdvance(t *testing.T) {
	s := NewString("ab")

	r, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 'a', r)

	s.Advance()
	r, ok = s.Current()
	require.True(t, ok)
	assert.Equal(t, 'b', r)

	s.Advance()
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestBackRewinds(t *testing.T) {
	s := NewString("abc")
	s.Advance(2)
	r, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 'c', r)

	s.Back(2)
	r, ok = s.Current()
	require.True(t, ok)
	assert.Equal(t, 'a', r)
}

func TestBackClampsAtStart(t *testing.T) {
	s := NewString("a")
	s.Back(5)
	r, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 'a', r)
}

func TestGetNext(t *testing.T) {
	s := NewString("xy")
	r, ok := s.GetNext()
	require.True(t, ok)
	assert.Equal(t, 'y', r)
}

func TestContinuesWithCaseSensitive(t *testing.T) {
	s := NewString("DOCTYPE html")
	assert.True(t, s.ContinuesWith("DOCTYPE", true))
	assert.False(t, s.ContinuesWith("doctype", true))

	r, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 'D', r, "ContinuesWith must not move the cursor")
}

func TestContinuesWithCaseInsensitive(t *testing.T) {
	s := NewString("doctype")
	assert.True(t, s.ContinuesWith("DOCTYPE", false))
}

func TestContinuesWithPastEOF(t *testing.T) {
	s := NewString("ab")
	assert.False(t, s.ContinuesWith("abcdefg", true))
}

func TestPositionTracksLinesAndColumns(t *testing.T) {
	s := NewString("a\nbc")
	assert.Equal(t, 1, s.Position().Line)
	assert.Equal(t, 1, s.Position().Column)

	s.Advance(2) // past 'a' and '\n', onto 'b'
	assert.Equal(t, 2, s.Position().Line)
	assert.Equal(t, 1, s.Position().Column)

	s.Advance()
	assert.Equal(t, 2, s.Position().Column)
}

func TestPositionAtEOF(t *testing.T) {
	s := NewString("a")
	s.Advance()
	_, ok := s.Current()
	require.False(t, ok)
	assert.Equal(t, 1, s.Position().Line)
	assert.Equal(t, 2, s.Position().Column)
}
