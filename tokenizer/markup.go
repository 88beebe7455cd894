package tokenizer

import (
	"github.com/nilxml/xmltok/classify"
	"github.com/nilxml/xmltok/token"
)

// stepMarkupDeclaration dispatches on the construct following "<!"
// (§4.2.4) by peeking the upcoming literal, without consuming it
// until the construct is identified.
func (t *Tokenizer) stepMarkupDeclaration() (*token.Token, error) {
	switch {
	case t.src.ContinuesWith("--", true):
		t.src.Advance(2)
		t.startBuilding(token.Comment)
		t.buf.Reset()
		t.state = stateComment
		return nil, nil

	case t.src.ContinuesWith("DOCTYPE", false):
		t.src.Advance(7)
		t.startBuilding(token.Doctype)
		t.state = stateDoctype
		return nil, nil

	case t.src.ContinuesWith("[CDATA[", true):
		t.src.Advance(7)
		t.startBuilding(token.CData)
		t.buf.Reset()
		t.state = stateCData
		return nil, nil

	default:
		return nil, t.errorf(ErrUndefinedMarkupDeclaration, "unrecognized markup declaration")
	}
}

// stepComment scans comment text after "<!--" has been consumed
// (§4.2.6). A run of "--" is only terminal when immediately followed
// by '>'; otherwise both hyphens are appended literally and scanning
// continues.
func (t *Tokenizer) stepComment() (*token.Token, error) {
	for {
		c, ok := t.src.Current()
		if !ok {
			return nil, t.errorf(ErrInvalidComment, "unexpected end of input in comment")
		}

		if c == '-' {
			t.src.Advance()
			c2, ok2 := t.src.Current()
			if ok2 && c2 == '-' {
				t.src.Advance()
				c3, ok3 := t.src.Current()
				if ok3 && c3 == '>' {
					t.src.Advance()
					t.building.Text = t.buf.String()
					return t.finish(), nil
				}
				t.buf.WriteString("--")
				continue
			}
			t.buf.WriteRune('-')
			continue
		}

		if !classify.Char(c) {
			return nil, t.errorf(ErrInvalidComment, "invalid character %q in comment", c)
		}
		t.buf.WriteRune(c)
		t.src.Advance()
	}
}

// stepCData scans a CDATA section after "<![CDATA[" has been
// consumed (§4.2.5), accumulating text until the terminating "]]>".
func (t *Tokenizer) stepCData() (*token.Token, error) {
	for {
		if t.src.ContinuesWith("]]>", true) {
			t.src.Advance(3)
			t.building.Text = t.buf.String()
			return t.finish(), nil
		}
		c, ok := t.src.Current()
		if !ok {
			return nil, t.errorf(ErrEOF, "unexpected end of input in CDATA section")
		}
		t.buf.WriteRune(c)
		t.src.Advance()
	}
}
