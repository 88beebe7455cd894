// Package tokenizer implements the streaming XML 1.0 tokenizer: a
// character-driven state machine that converts a character source
// into a finite stream of structural tokens (character data, CDATA,
// comments, the XML declaration, processing instructions, DOCTYPE,
// start/end tags, and a terminal end-of-file token).
//
// The tokenizer is single-threaded, synchronous, and deterministic:
// for the same input and entity table it always produces the same
// token sequence. It is not safe for concurrent use, and once
// NextToken returns an error the tokenizer must not be reused.
package tokenizer

import (
	"strings"

	"github.com/nilxml/xmltok/classify"
	"github.com/nilxml/xmltok/entity"
	"github.com/nilxml/xmltok/source"
	"github.com/nilxml/xmltok/token"
)

// state names the tokenizer's current position in the XML grammar.
// Every state but stateData and stateEOF is entered and fully
// resolved within a single NextToken call: NextToken only ever
// returns control to the caller holding stateData (about to look at
// the next character) or stateEOF (the stream is exhausted).
type state int

const (
	stateData state = iota
	stateTagOpen
	stateMarkupDeclaration
	stateComment
	stateCData
	stateDoctype
	stateDoctypeBeforeName
	stateDoctypeName
	stateDoctypeAfterName
	stateDeclaration
	stateProcessingTarget
	stateProcessingContent
	stateTagName
	stateTagSelfClosing
	stateAttributeBeforeName
	stateAttributeName
	stateAttributeAfterName
	stateAttributeBeforeValue
	stateAttributeValue
	stateAttributeAfterValue
	stateTagEndOpen
	stateTagEndName
	stateTagEndAfterName
	stateEOF
)

// Tokenizer scans a character source and produces one token per call
// to NextToken.
type Tokenizer struct {
	src      *source.Source
	entities *entity.Table
	state    state

	buf strings.Builder // scan buffer, reused across tokens

	building    token.Token     // the composite token currently under construction
	markupStart token.Position  // position of the '<' that opened the current token
	attr        token.Attribute // the attribute currently under construction
	quote       rune            // active quote character for an attribute/id value

	// pending holds characters already resolved from a top-level
	// entity reference (§4.2.2/§4.2.1) but not yet handed to the
	// caller: one NextToken call returns one Character at a time.
	pending []rune
}

// New creates a Tokenizer reading from src. If entities is nil, the
// five predefined XML entities are used.
func New(src *source.Source, entities *entity.Table) *Tokenizer {
	if entities == nil {
		entities = entity.Predefined()
	}
	return &Tokenizer{
		src:      src,
		entities: entities,
		state:    stateData,
	}
}

// NextToken consumes characters from the source until one complete
// token has been assembled, and returns it. A single terminal
// EndOfFile token follows all real tokens; further calls continue to
// return it.
func (t *Tokenizer) NextToken() (token.Token, error) {
	if len(t.pending) > 0 {
		r := t.pending[0]
		t.pending = t.pending[1:]
		pos := t.src.Position()
		return token.Token{Kind: token.Character, Char: r, Start: pos, End: pos}, nil
	}

	for {
		tok, err := t.step()
		if err != nil {
			return token.Token{}, err
		}
		if tok != nil {
			return *tok, nil
		}
	}
}

// step advances the state machine by dispatching on the current
// state. It returns a non-nil token when one has just been completed,
// or nil to continue the drive loop.
func (t *Tokenizer) step() (*token.Token, error) {
	switch t.state {
	case stateData:
		return t.stepData()
	case stateTagOpen:
		return t.stepTagOpen()
	case stateMarkupDeclaration:
		return t.stepMarkupDeclaration()
	case stateComment:
		return t.stepComment()
	case stateCData:
		return t.stepCData()
	case stateDoctype:
		return t.stepDoctype()
	case stateDoctypeBeforeName:
		return t.stepDoctypeBeforeName()
	case stateDoctypeName:
		return t.stepDoctypeName()
	case stateDoctypeAfterName:
		return t.stepDoctypeAfterName()
	case stateDeclaration:
		return t.stepDeclaration()
	case stateProcessingTarget:
		return t.stepProcessingTarget()
	case stateProcessingContent:
		return t.stepProcessingContent()
	case stateTagName:
		return t.stepTagName()
	case stateTagSelfClosing:
		return t.stepTagSelfClosing()
	case stateAttributeBeforeName:
		return t.stepAttributeBeforeName()
	case stateAttributeName:
		return t.stepAttributeName()
	case stateAttributeAfterName:
		return t.stepAttributeAfterName()
	case stateAttributeBeforeValue:
		return t.stepAttributeBeforeValue()
	case stateAttributeValue:
		return t.stepAttributeValue()
	case stateAttributeAfterValue:
		return t.stepAttributeAfterValue()
	case stateTagEndOpen:
		return t.stepTagEndOpen()
	case stateTagEndName:
		return t.stepTagEndName()
	case stateTagEndAfterName:
		return t.stepTagEndAfterName()
	case stateEOF:
		pos := t.src.Position()
		return &token.Token{Kind: token.EndOfFile, Start: pos, End: pos}, nil
	default:
		return nil, t.errorf(ErrEOF, "unreachable tokenizer state")
	}
}

// requireCurrent returns the character under the cursor, or an EOF
// error if the input has ended.
func (t *Tokenizer) requireCurrent() (rune, error) {
	c, ok := t.src.Current()
	if !ok {
		return 0, t.errorf(ErrEOF, "unexpected end of input")
	}
	return c, nil
}

func (t *Tokenizer) skipOptionalWhitespace() {
	for {
		c, ok := t.src.Current()
		if !ok || !classify.Whitespace(c) {
			return
		}
		t.src.Advance()
	}
}

func (t *Tokenizer) skipRequiredWhitespace(kind ErrorKind, message string) error {
	c, err := t.requireCurrent()
	if err != nil {
		return err
	}
	if !classify.Whitespace(c) {
		return t.errorf(kind, message)
	}
	t.src.Advance()
	t.skipOptionalWhitespace()
	return nil
}

func (t *Tokenizer) expectQuote(kind ErrorKind, message string) (rune, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return 0, err
	}
	if c != '"' && c != '\'' {
		return 0, t.errorf(kind, message)
	}
	t.src.Advance()
	return c, nil
}

// scanUntilQuote accumulates characters up to (not including) the
// closing quote, consuming the quote itself. filter, if non-nil,
// rejects characters that are not legal inside the literal.
func (t *Tokenizer) scanUntilQuote(quote rune, filter func(rune) bool, invalidKind ErrorKind, invalidMessage string) (string, error) {
	var sb strings.Builder
	for {
		c, err := t.requireCurrent()
		if err != nil {
			return "", err
		}
		if c == quote {
			t.src.Advance()
			return sb.String(), nil
		}
		if filter != nil && !filter(c) {
			return "", t.errorf(invalidKind, invalidMessage)
		}
		sb.WriteRune(c)
		t.src.Advance()
	}
}

func (t *Tokenizer) startBuilding(kind token.Kind) {
	t.building = token.Token{Kind: kind, Start: t.markupStart}
}

func (t *Tokenizer) finish() *token.Token {
	t.building.End = t.src.Position()
	tok := t.building
	t.building = token.Token{}
	t.state = stateData
	return &tok
}

// ---- §4.2.1 Data ----

func (t *Tokenizer) stepData() (*token.Token, error) {
	c, ok := t.src.Current()
	if !ok {
		t.state = stateEOF
		pos := t.src.Position()
		return &token.Token{Kind: token.EndOfFile, Start: pos, End: pos}, nil
	}

	switch {
	case c == '&':
		start := t.src.Position()
		t.src.Advance()
		text, err := t.readCharacterReference()
		if err != nil {
			return nil, err
		}
		runes := []rune(text)
		if len(runes) == 0 {
			return nil, nil
		}
		t.pending = runes[1:]
		end := t.src.Position()
		return &token.Token{Kind: token.Character, Char: runes[0], Start: start, End: end}, nil

	case c == '<':
		t.markupStart = t.src.Position()
		t.src.Advance()
		t.state = stateTagOpen
		return nil, nil

	case c == ']':
		if t.src.ContinuesWith("]]>", true) {
			return nil, t.errorf(ErrInvalidCharData, "']]>' is not allowed in character data")
		}
		start := t.src.Position()
		t.src.Advance()
		end := t.src.Position()
		return &token.Token{Kind: token.Character, Char: ']', Start: start, End: end}, nil

	default:
		start := t.src.Position()
		t.src.Advance()
		end := t.src.Position()
		return &token.Token{Kind: token.Character, Char: c, Start: start, End: end}, nil
	}
}

// ---- §4.2.3 Tag open ----

func (t *Tokenizer) stepTagOpen() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}

	switch {
	case c == '!':
		t.src.Advance()
		t.state = stateMarkupDeclaration
		return nil, nil

	case c == '?':
		t.src.Advance()
		if t.src.ContinuesWith("xml", true) {
			t.src.Advance(3)
			t.startBuilding(token.Declaration)
			t.state = stateDeclaration
			return nil, nil
		}
		t.startBuilding(token.ProcessingInstruction)
		t.buf.Reset()
		t.state = stateProcessingTarget
		return nil, nil

	case c == '/':
		t.src.Advance()
		t.startBuilding(token.CloseTag)
		t.buf.Reset()
		t.state = stateTagEndOpen
		return nil, nil

	case classify.NameStartChar(c):
		t.startBuilding(token.OpenTag)
		t.buf.Reset()
		t.buf.WriteRune(c)
		t.src.Advance()
		t.state = stateTagName
		return nil, nil

	default:
		return nil, t.errorf(ErrInvalidStartTag, "invalid character %q after '<'", c)
	}
}

// ---- §4.2.7 Tag name / attributes ----

func (t *Tokenizer) stepTagName() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}

	switch {
	case classify.NameChar(c):
		t.buf.WriteRune(c)
		t.src.Advance()
		return nil, nil

	case c == '>':
		t.building.Name = t.buf.String()
		t.src.Advance()
		return t.finish(), nil

	case classify.Whitespace(c):
		t.building.Name = t.buf.String()
		t.src.Advance()
		t.state = stateAttributeBeforeName
		return nil, nil

	case c == '/':
		t.building.Name = t.buf.String()
		t.src.Advance()
		t.state = stateTagSelfClosing
		return nil, nil

	default:
		return nil, t.errorf(ErrInvalidName, "invalid character %q in tag name", c)
	}
}

func (t *Tokenizer) stepTagSelfClosing() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}
	if c != '>' {
		return nil, t.errorf(ErrInvalidName, "expected '>' after '/'")
	}
	t.src.Advance()
	t.building.SelfClosing = true
	return t.finish(), nil
}

func (t *Tokenizer) stepAttributeBeforeName() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}

	switch {
	case classify.Whitespace(c):
		t.src.Advance()
		return nil, nil

	case c == '/':
		t.src.Advance()
		t.state = stateTagSelfClosing
		return nil, nil

	case c == '>':
		t.src.Advance()
		return t.finish(), nil

	case classify.NameStartChar(c):
		t.attr = token.Attribute{}
		t.buf.Reset()
		t.buf.WriteRune(c)
		t.src.Advance()
		t.state = stateAttributeName
		return nil, nil

	default:
		return nil, t.errorf(ErrInvalidAttribute, "invalid character %q before attribute name", c)
	}
}

func (t *Tokenizer) hasAttribute(name string) bool {
	for _, a := range t.building.Attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

func (t *Tokenizer) stepAttributeName() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}

	switch {
	case classify.NameChar(c):
		t.buf.WriteRune(c)
		t.src.Advance()
		return nil, nil

	case classify.Whitespace(c):
		t.attr.Name = t.buf.String()
		t.src.Advance()
		t.state = stateAttributeAfterName
		return nil, nil

	case c == '=':
		t.attr.Name = t.buf.String()
		t.src.Advance()
		t.state = stateAttributeBeforeValue
		return nil, nil

	case c == '>':
		t.attr.Name = t.buf.String()
		if err := t.pushAttribute(); err != nil {
			return nil, err
		}
		t.src.Advance()
		return t.finish(), nil

	case c == '/':
		t.attr.Name = t.buf.String()
		if err := t.pushAttribute(); err != nil {
			return nil, err
		}
		t.src.Advance()
		t.state = stateTagSelfClosing
		return nil, nil

	default:
		return nil, t.errorf(ErrInvalidAttribute, "invalid character %q in attribute name", c)
	}
}

func (t *Tokenizer) pushAttribute() error {
	if t.hasAttribute(t.attr.Name) {
		return t.errorf(ErrUniqueAttribute, "duplicate attribute %q", t.attr.Name)
	}
	t.building.Attributes = append(t.building.Attributes, t.attr)
	t.attr = token.Attribute{}
	return nil
}

func (t *Tokenizer) stepAttributeAfterName() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}
	switch {
	case classify.Whitespace(c):
		t.src.Advance()
		return nil, nil
	case c == '=':
		t.src.Advance()
		t.state = stateAttributeBeforeValue
		return nil, nil
	default:
		return nil, t.errorf(ErrInvalidAttribute, "expected '=' after attribute name")
	}
}

func (t *Tokenizer) stepAttributeBeforeValue() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}
	switch {
	case classify.Whitespace(c):
		t.src.Advance()
		return nil, nil
	case c == '"' || c == '\'':
		t.quote = c
		t.src.Advance()
		t.buf.Reset()
		t.state = stateAttributeValue
		return nil, nil
	default:
		return nil, t.errorf(ErrInvalidAttribute, "expected quoted attribute value")
	}
}

func (t *Tokenizer) stepAttributeValue() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}

	switch {
	case c == t.quote:
		t.src.Advance()
		t.attr.Value = t.buf.String()
		if err := t.pushAttribute(); err != nil {
			return nil, err
		}
		t.state = stateAttributeAfterValue
		return nil, nil

	case c == '&':
		t.src.Advance()
		text, err := t.readCharacterReference()
		if err != nil {
			return nil, err
		}
		t.buf.WriteString(text)
		return nil, nil

	case c == '<':
		return nil, t.errorf(ErrLtInAttributeValue, "'<' is not allowed in an attribute value")

	default:
		t.buf.WriteRune(c)
		t.src.Advance()
		return nil, nil
	}
}

func (t *Tokenizer) stepAttributeAfterValue() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}
	switch {
	case classify.Whitespace(c):
		t.src.Advance()
		t.state = stateAttributeBeforeName
		return nil, nil
	case c == '/':
		t.src.Advance()
		t.state = stateTagSelfClosing
		return nil, nil
	case c == '>':
		t.src.Advance()
		return t.finish(), nil
	default:
		return nil, t.errorf(ErrInvalidAttribute, "expected whitespace or '>' after attribute value")
	}
}

// ---- §4.2.8 End tags ----

func (t *Tokenizer) stepTagEndOpen() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}
	if !classify.NameStartChar(c) {
		return nil, t.errorf(ErrInvalidEndTag, "expected tag name after '</'")
	}
	t.buf.WriteRune(c)
	t.src.Advance()
	t.state = stateTagEndName
	return nil, nil
}

func (t *Tokenizer) stepTagEndName() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}
	switch {
	case classify.NameChar(c):
		t.buf.WriteRune(c)
		t.src.Advance()
		return nil, nil
	case c == '>':
		t.building.Name = t.buf.String()
		t.src.Advance()
		return t.finish(), nil
	case classify.Whitespace(c):
		t.building.Name = t.buf.String()
		t.src.Advance()
		t.state = stateTagEndAfterName
		return nil, nil
	default:
		return nil, t.errorf(ErrInvalidEndTag, "invalid character %q in end tag name", c)
	}
}

func (t *Tokenizer) stepTagEndAfterName() (*token.Token, error) {
	c, err := t.requireCurrent()
	if err != nil {
		return nil, err
	}
	switch {
	case classify.Whitespace(c):
		t.src.Advance()
		return nil, nil
	case c == '>':
		t.src.Advance()
		return t.finish(), nil
	default:
		return nil, t.errorf(ErrInvalidEndTag, "expected '>' after end tag name")
	}
}
