package tokenizer

import (
	"fmt"

	"github.com/nilxml/xmltok/classify"
	"github.com/nilxml/xmltok/token"
)

// stepDeclaration parses the XML declaration's pseudo-attributes
// after "<?xml" has been consumed (§4.2.10). If the character
// immediately following "<?xml" is not whitespace, this is not a
// declaration at all; per the module's resolution of the fallthrough
// case, the target is already known to be "xml" and is rejected
// outright rather than half-building a processing instruction.
func (t *Tokenizer) stepDeclaration() (*token.Token, error) {
	c, ok := t.src.Current()
	if !ok {
		return nil, t.errorf(ErrEOF, "unexpected end of input in XML declaration")
	}
	if !classify.Whitespace(c) {
		return nil, t.errorf(ErrInvalidPI, "a processing instruction target must not be \"xml\"")
	}
	t.src.Advance()
	t.skipOptionalWhitespace()

	if !t.src.ContinuesWith("version", true) {
		return nil, t.errorf(ErrXmlDeclarationInvalid, "the XML declaration requires a version")
	}
	version, err := t.consumePseudoAttr("version")
	if err != nil {
		return nil, err
	}
	t.building.Version = version
	if err := t.afterPseudoAttr(); err != nil {
		return nil, err
	}

	if t.src.ContinuesWith("encoding", true) {
		encoding, err := t.consumePseudoAttr("encoding")
		if err != nil {
			return nil, err
		}
		if err := validateEncodingName(encoding); err != nil {
			return nil, t.errorf(ErrXmlDeclarationInvalid, "invalid encoding name %q: %s", encoding, err)
		}
		t.building.Encoding = encoding
		t.building.HasEncoding = true
		if err := t.afterPseudoAttr(); err != nil {
			return nil, err
		}
	}

	if t.src.ContinuesWith("standalone", true) {
		standalone, err := t.consumePseudoAttr("standalone")
		if err != nil {
			return nil, err
		}
		switch standalone {
		case "yes":
			t.building.Standalone = token.StandaloneYes
		case "no":
			t.building.Standalone = token.StandaloneNo
		default:
			return nil, t.errorf(ErrXmlDeclarationInvalid, "standalone must be \"yes\" or \"no\", got %q", standalone)
		}
		if err := t.afterPseudoAttr(); err != nil {
			return nil, err
		}
	}

	return t.closeDeclaration()
}

// consumePseudoAttr consumes "name=" followed by a quoted value,
// assuming the caller already confirmed name is the upcoming literal.
func (t *Tokenizer) consumePseudoAttr(name string) (string, error) {
	t.src.Advance(len(name))
	t.skipOptionalWhitespace()
	c, err := t.requireCurrent()
	if err != nil {
		return "", err
	}
	if c != '=' {
		return "", t.errorf(ErrXmlDeclarationInvalid, "expected '=' after %q", name)
	}
	t.src.Advance()
	t.skipOptionalWhitespace()

	quote, err := t.expectQuote(ErrXmlDeclarationInvalid, "expected a quoted value for "+name)
	if err != nil {
		return "", err
	}
	return t.scanUntilQuote(quote, nil, ErrXmlDeclarationInvalid, "")
}

// afterPseudoAttr consumes the whitespace separating one
// pseudo-attribute from the next, if present; its absence is not an
// error here, since the caller may be about to look for "?>".
func (t *Tokenizer) afterPseudoAttr() error {
	c, err := t.requireCurrent()
	if err != nil {
		return err
	}
	if classify.Whitespace(c) {
		t.src.Advance()
		t.skipOptionalWhitespace()
	}
	return nil
}

func (t *Tokenizer) closeDeclaration() (*token.Token, error) {
	if !t.src.ContinuesWith("?>", true) {
		return nil, t.errorf(ErrXmlDeclarationInvalid, "expected '?>' to close the XML declaration")
	}
	t.src.Advance(2)
	return t.finish(), nil
}

// validateEncodingName enforces the EncName production: a letter
// followed by letters, digits, '.', '_', or '-'.
func validateEncodingName(s string) error {
	runes := []rune(s)
	if len(runes) == 0 || !isASCIILetter(runes[0]) {
		return fmt.Errorf("must start with a letter")
	}
	for _, r := range runes[1:] {
		if !isASCIILetter(r) && !classify.Digit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("invalid character %q", r)
		}
	}
	return nil
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
