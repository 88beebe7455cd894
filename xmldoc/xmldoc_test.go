package xmldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleTree(t *testing.T) {
	doc, err := ParseString(`<a><b>hi</b><c/></a>`, nil)
	require.NoError(t, err)

	require.NotNil(t, doc.Root)
	assert.Equal(t, "a", doc.Root.Name)
	require.Len(t, doc.Root.Children, 2)

	b := doc.Root.Children[0]
	assert.Equal(t, "b", b.Name)
	assert.Same(t, doc.Root, b.Parent)
	require.Len(t, b.Children, 1)
	assert.Equal(t, TextNode, b.Children[0].Type)
	assert.Equal(t, "hi", b.Children[0].Data)

	c := doc.Root.Children[1]
	assert.Equal(t, "c", c.Name)
	assert.True(t, c.SelfClosing)
}

func TestParseDeclarationAndDoctype(t *testing.T) {
	doc, err := ParseString(`<?xml version="1.0"?><!DOCTYPE a><a/>`, nil)
	require.NoError(t, err)

	require.NotNil(t, doc.Declaration)
	assert.Equal(t, "1.0", doc.Declaration.Version)
	require.NotNil(t, doc.Doctype)
	assert.Equal(t, "a", doc.Doctype.Name)
	require.NotNil(t, doc.Root)
}

func TestParseProlog(t *testing.T) {
	doc, err := ParseString(`<!--before--><a/><!--after-->`, nil)
	require.NoError(t, err)

	require.Len(t, doc.Prolog, 1)
	assert.Equal(t, "before", doc.Prolog[0].Data)
	require.Len(t, doc.Epilog, 1)
	assert.Equal(t, "after", doc.Epilog[0].Data)
}

func TestMismatchedCloseTag(t *testing.T) {
	_, err := ParseString(`<a><b></a></b>`, nil)
	require.Error(t, err)
	_, ok := err.(*ParseError)
	require.True(t, ok)
}

func TestUnclosedTag(t *testing.T) {
	_, err := ParseString(`<a><b></b>`, nil)
	require.Error(t, err)
}

func TestMultipleRootElements(t *testing.T) {
	_, err := ParseString(`<a/><b/>`, nil)
	require.Error(t, err)
}

func TestLexicalErrorPropagates(t *testing.T) {
	_, err := ParseString(`<a b="1" b="2"/>`, nil)
	require.Error(t, err)
}
