// Package entity implements the static named-entity table used to
// resolve XML character and entity references, and the numeric
// reference decoder.
package entity

import (
	"fmt"

	"github.com/nilxml/xmltok/classify"
)

// Table maps entity names to their replacement text. The zero value
// is an empty table; use Predefined for the five built-in XML
// entities.
type Table struct {
	entries map[string]string
}

// Predefined returns a Table containing the five entities mandated by
// XML 1.0: amp, lt, gt, apos, and quot.
func Predefined() *Table {
	t := New()
	t.Define("amp", "&")
	t.Define("lt", "<")
	t.Define("gt", ">")
	t.Define("apos", "'")
	t.Define("quot", "\"")
	return t
}

// New returns an empty Table.
func New() *Table {
	return &Table{entries: make(map[string]string)}
}

// Define adds or replaces the replacement text for name.
func (t *Table) Define(name, replacement string) {
	if t.entries == nil {
		t.entries = make(map[string]string)
	}
	t.entries[name] = replacement
}

// Lookup returns the replacement text for name, if defined.
func (t *Table) Lookup(name string) (string, bool) {
	r, ok := t.entries[name]
	return r, ok
}

// ErrorCode distinguishes the two ways entity resolution can fail.
type ErrorCode int

const (
	// InvalidNumber means a numeric reference did not decode to a
	// legal XML character.
	InvalidNumber ErrorCode = iota
	// InvalidCode means a named reference was not found in the table.
	InvalidCode
)

// ResolveError reports a failed entity resolution.
type ResolveError struct {
	Code ErrorCode
	Name string
}

func (e *ResolveError) Error() string {
	switch e.Code {
	case InvalidNumber:
		return fmt.Sprintf("invalid numeric character reference: %s", e.Name)
	default:
		return fmt.Sprintf("undefined entity reference: %s", e.Name)
	}
}

// ResolveNamed resolves a named entity reference (e.g. the "amp" in
// &amp;) against the table.
func (t *Table) ResolveNamed(name string) (string, error) {
	if r, ok := t.Lookup(name); ok {
		return r, nil
	}
	return "", &ResolveError{Code: InvalidCode, Name: name}
}

// ResolveNumeric resolves a numeric character reference. digits is the
// sequence of digit characters between "&#" (or "&#x") and the
// terminating ";"; hex selects base-16 interpretation.
func ResolveNumeric(digits string, hex bool) (string, error) {
	base := int64(10)
	if hex {
		base = 16
	}

	var codepoint int64
	for _, d := range digits {
		var v int64
		switch {
		case d >= '0' && d <= '9':
			v = int64(d - '0')
		case hex && d >= 'a' && d <= 'f':
			v = int64(d-'a') + 10
		case hex && d >= 'A' && d <= 'F':
			v = int64(d-'A') + 10
		default:
			return "", &ResolveError{Code: InvalidNumber, Name: "#" + digits}
		}
		codepoint = codepoint*base + v
		if codepoint > 0x10FFFF {
			return "", &ResolveError{Code: InvalidNumber, Name: "#" + digits}
		}
	}

	if !classify.ValidCharRef(codepoint) {
		prefix := "#"
		if hex {
			prefix = "#x"
		}
		return "", &ResolveError{Code: InvalidNumber, Name: prefix + digits}
	}

	return string(rune(codepoint)), nil
}
