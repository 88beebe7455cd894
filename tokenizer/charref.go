package tokenizer

import (
	"strings"

	"github.com/nilxml/xmltok/classify"
	"github.com/nilxml/xmltok/entity"
)

// readCharacterReference scans a character or entity reference after
// the leading '&' has already been consumed (§4.2.2), resolves it
// against the entity table, and returns its replacement text. It is
// shared by the top-level data state and attribute-value scanning.
func (t *Tokenizer) readCharacterReference() (string, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return "", t.errorf(ErrCharacterReferenceNotTerminated, "unexpected end of input in character reference")
	}

	if c == '#' {
		t.src.Advance()
		hex := false
		if c2, ok := t.src.Current(); ok && (c2 == 'x' || c2 == 'X') {
			hex = true
			t.src.Advance()
		}

		var digits strings.Builder
		for {
			c3, ok := t.src.Current()
			if !ok {
				return "", t.errorf(ErrCharacterReferenceNotTerminated, "unterminated character reference")
			}
			if c3 == ';' {
				break
			}
			if hex && classify.HexDigit(c3) || !hex && classify.Digit(c3) {
				digits.WriteRune(c3)
				t.src.Advance()
				continue
			}
			return "", t.errorf(ErrCharacterReferenceNotTerminated, "invalid digit %q in character reference", c3)
		}
		if digits.Len() == 0 {
			return "", t.errorf(ErrCharacterReferenceNotTerminated, "character reference has no digits")
		}
		t.src.Advance() // consume ';'

		text, err := entity.ResolveNumeric(digits.String(), hex)
		if err != nil {
			return "", t.errorf(ErrCharacterReferenceInvalidNumber, "%s", err.Error())
		}
		return text, nil
	}

	if classify.NameStartChar(c) {
		var name strings.Builder
		name.WriteRune(c)
		t.src.Advance()
		for {
			c2, ok := t.src.Current()
			if !ok {
				return "", t.errorf(ErrCharacterReferenceNotTerminated, "unterminated entity reference")
			}
			if c2 == ';' {
				break
			}
			if !classify.NameChar(c2) {
				return "", t.errorf(ErrCharacterReferenceNotTerminated, "invalid character %q in entity name", c2)
			}
			name.WriteRune(c2)
			t.src.Advance()
		}
		t.src.Advance() // consume ';'

		text, err := t.entities.ResolveNamed(name.String())
		if err != nil {
			return "", t.errorf(ErrCharacterReferenceInvalidCode, "%s", err.Error())
		}
		return text, nil
	}

	return "", t.errorf(ErrCharacterReferenceNotTerminated, "'&' not followed by a valid character or entity reference")
}
