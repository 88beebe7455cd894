package tokenizer

import (
	"github.com/nilxml/xmltok/classify"
	"github.com/nilxml/xmltok/token"
)

// stepDoctype requires the mandatory whitespace between "DOCTYPE" and
// the document type name (§4.2.12).
func (t *Tokenizer) stepDoctype() (*token.Token, error) {
	if err := t.skipRequiredWhitespace(ErrDoctypeInvalid, "expected whitespace after DOCTYPE"); err != nil {
		return nil, err
	}
	t.state = stateDoctypeBeforeName
	return nil, nil
}

func (t *Tokenizer) stepDoctypeBeforeName() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}
	if !classify.NameStartChar(c) {
		return nil, t.errorf(ErrDoctypeInvalid, "expected a name after DOCTYPE")
	}
	t.buf.Reset()
	t.buf.WriteRune(c)
	t.src.Advance()
	t.state = stateDoctypeName
	return nil, nil
}

func (t *Tokenizer) stepDoctypeName() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}
	if classify.NameChar(c) {
		t.buf.WriteRune(c)
		t.src.Advance()
		return nil, nil
	}

	t.building.Name = t.buf.String()
	switch {
	case c == '>':
		t.src.Advance()
		return t.finish(), nil
	case classify.Whitespace(c):
		t.src.Advance()
		t.skipOptionalWhitespace()
		t.state = stateDoctypeAfterName
		return nil, nil
	default:
		return nil, t.errorf(ErrDoctypeInvalid, "invalid character %q in DOCTYPE name", c)
	}
}

// stepDoctypeAfterName dispatches on the external-identifier keyword,
// an internal subset, or the closing '>' (§4.2.12).
func (t *Tokenizer) stepDoctypeAfterName() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}

	switch {
	case c == '>':
		t.src.Advance()
		return t.finish(), nil

	case t.src.ContinuesWith("PUBLIC", false):
		t.src.Advance(6)
		if err := t.parseExternalID(true); err != nil {
			return nil, err
		}
		return t.finishDoctypeExternalID()

	case t.src.ContinuesWith("SYSTEM", false):
		t.src.Advance(6)
		if err := t.parseExternalID(false); err != nil {
			return nil, err
		}
		return t.finishDoctypeExternalID()

	case c == '[':
		t.src.Advance()
		if err := t.skipInternalSubset(); err != nil {
			return nil, err
		}
		return t.finishDoctypeAfterSubset()

	default:
		return nil, t.errorf(ErrDoctypeInvalid, "invalid character %q in DOCTYPE", c)
	}
}

// parseExternalID reads a PUBLIC or SYSTEM external identifier
// (§4.2.12) into the doctype token under construction.
func (t *Tokenizer) parseExternalID(isPublic bool) error {
	if err := t.skipRequiredWhitespace(ErrDoctypeInvalid, "expected whitespace after PUBLIC/SYSTEM"); err != nil {
		return err
	}

	if isPublic {
		quote, err := t.expectQuote(ErrInvalidPubId, "expected a quoted public identifier")
		if err != nil {
			return err
		}
		pubid, err := t.scanUntilQuote(quote, classify.PubidChar, ErrInvalidPubId, "invalid character in public identifier")
		if err != nil {
			return err
		}
		t.building.PublicID = pubid
		t.building.HasPublicID = true

		if err := t.skipRequiredWhitespace(ErrDoctypeInvalid, "expected whitespace after public identifier"); err != nil {
			return err
		}
	}

	quote, err := t.expectQuote(ErrDoctypeInvalid, "expected a quoted system identifier")
	if err != nil {
		return err
	}
	sysid, err := t.scanUntilQuote(quote, nil, ErrDoctypeInvalid, "")
	if err != nil {
		return err
	}
	t.building.SystemID = sysid
	t.building.HasSystemID = true
	return nil
}

// finishDoctypeExternalID consumes the optional internal subset and
// the closing '>' that follow an external identifier.
func (t *Tokenizer) finishDoctypeExternalID() (*token.Token, error) {
	t.skipOptionalWhitespace()
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}
	if c == '[' {
		t.src.Advance()
		if err := t.skipInternalSubset(); err != nil {
			return nil, err
		}
		t.skipOptionalWhitespace()
		c, err = t.requireCurrent()
		if err != nil {
			return nil, err
		}
	}
	if c != '>' {
		return nil, t.errorf(ErrDoctypeInvalid, "expected '>' to close DOCTYPE")
	}
	t.src.Advance()
	return t.finish(), nil
}

func (t *Tokenizer) finishDoctypeAfterSubset() (*token.Token, error) {
	t.skipOptionalWhitespace()
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}
	if c != '>' {
		return nil, t.errorf(ErrDoctypeInvalid, "expected '>' to close DOCTYPE")
	}
	t.src.Advance()
	return t.finish(), nil
}

// skipInternalSubset consumes an internal subset without materializing
// its declarations: this tokenizer does not parse DTD internal
// subsets (see the module's design notes on DTD scope).
func (t *Tokenizer) skipInternalSubset() error {
	for {
		c, ok := t.src.Current()
		if !ok {
			return t.errorf(ErrDoctypeInvalid, "unexpected end of input in internal subset")
		}
		if c == ']' {
			t.src.Advance()
			return nil
		}
		t.src.Advance()
	}
}
