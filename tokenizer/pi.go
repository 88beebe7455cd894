package tokenizer

import (
	"strings"

	"github.com/nilxml/xmltok/classify"
	"github.com/nilxml/xmltok/token"
)

// stepProcessingTarget reads a processing instruction's target name
// after "<?" has been consumed and found not to spell "xml" at the
// tag-open state (§4.2.11). The target is still rejected here if it
// equals "xml" under ASCII case-insensitive comparison, since
// case-insensitive matches like "XML" or "xMl" are not caught by the
// case-sensitive check in stepTagOpen.
func (t *Tokenizer) stepProcessingTarget() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}
	if !classify.NameStartChar(c) {
		return nil, t.errorf(ErrInvalidPI, "invalid character %q starting a processing instruction target", c)
	}
	t.buf.WriteRune(c)
	t.src.Advance()

	for {
		c, ok := t.src.Current()
		if !ok {
			return nil, t.errorf(ErrEOF, "unexpected end of input in processing instruction")
		}
		if !classify.NameChar(c) {
			break
		}
		t.buf.WriteRune(c)
		t.src.Advance()
	}

	target := t.buf.String()
	if strings.EqualFold(target, "xml") {
		return nil, t.errorf(ErrInvalidPI, "a processing instruction target must not be \"xml\"")
	}
	t.building.Target = target

	c, ok := t.src.Current()
	if !ok {
		return nil, t.errorf(ErrEOF, "unexpected end of input in processing instruction")
	}
	switch {
	case c == '?':
		t.src.Advance()
		c2, err := t.requireCurrent()
		if err != nil {
			return nil, err
		}
		if c2 != '>' {
			return nil, t.errorf(ErrInvalidPI, "expected '>' after '?' to close the processing instruction")
		}
		t.src.Advance()
		return t.finish(), nil

	case classify.Whitespace(c):
		t.src.Advance()
		t.buf.Reset()
		t.state = stateProcessingContent
		return nil, nil

	default:
		return nil, t.errorf(ErrInvalidPI, "invalid character %q after processing instruction target", c)
	}
}

// stepProcessingContent accumulates a processing instruction's
// content until the terminating "?>" (§4.2.11).
func (t *Tokenizer) stepProcessingContent() (*token.Token, error) {
	for {
		if t.src.ContinuesWith("?>", true) {
			t.src.Advance(2)
			t.building.Text = t.buf.String()
			return t.finish(), nil
		}
		c, ok := t.src.Current()
		if !ok {
			return nil, t.errorf(ErrEOF, "unexpected end of input in processing instruction")
		}
		t.buf.WriteRune(c)
		t.src.Advance()
	}
}
