package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameStartChar(t *testing.T) {
	for _, r := range []rune{':', '_', 'A', 'z', 0x00C0, 0x037F, 0x10000} {
		assert.Truef(t, NameStartChar(r), "expected %U to start a name", r)
	}
	for _, r := range []rune{'-', '.', '0', ' ', 0x00B7, 0x0300} {
		assert.Falsef(t, NameStartChar(r), "expected %U to not start a name", r)
	}
}

func TestNameChar(t *testing.T) {
	for _, r := range []rune{':', '-', '.', '0', '9', 0x00B7, 0x0300, 0x203F} {
		assert.Truef(t, NameChar(r), "expected %U to continue a name", r)
	}
	assert.False(t, NameChar(' '))
}

func TestPubidChar(t *testing.T) {
	for _, r := range []rune{' ', '\r', '\n', 'A', '9', '-', '\'', '(', '%'} {
		assert.True(t, PubidChar(r))
	}
	for _, r := range []rune{'<', '&', '"'} {
		assert.False(t, PubidChar(r))
	}
}

func TestChar(t *testing.T) {
	assert.True(t, Char('\t'))
	assert.True(t, Char('\n'))
	assert.True(t, Char('A'))
	assert.True(t, Char(0x10000))
	assert.False(t, Char(0x0000))
	assert.False(t, Char(0x0001))
	assert.False(t, Char(0xD800))
}

func TestWhitespace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\n', '\r'} {
		assert.True(t, Whitespace(r))
	}
	assert.False(t, Whitespace('a'))
}

func TestValidCharRef(t *testing.T) {
	assert.True(t, ValidCharRef(65))
	assert.True(t, ValidCharRef(0x10FFFF))
	assert.False(t, ValidCharRef(0xFFFE))
	assert.False(t, ValidCharRef(0xD800))
	assert.False(t, ValidCharRef(-1))
	assert.False(t, ValidCharRef(0x110000))
}
