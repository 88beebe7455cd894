// Package xmldoc builds an in-memory document tree by driving a
// tokenizer.Tokenizer to completion. It is the parser named as an
// external collaborator of the tokenizer: the tokenizer itself never
// builds a tree, only a token stream.
package xmldoc

import (
	"fmt"
	"io"

	"github.com/nilxml/xmltok/entity"
	"github.com/nilxml/xmltok/source"
	"github.com/nilxml/xmltok/token"
	"github.com/nilxml/xmltok/tokenizer"
)

// NodeType identifies which kind of node a Node value holds.
type NodeType int

const (
	// ElementNode is a start/end tag pair or a self-closing tag.
	ElementNode NodeType = iota
	// TextNode holds a run of adjacent Character tokens.
	TextNode
	// CommentNode holds a comment's text.
	CommentNode
	// CDataNode holds a CDATA section's text.
	CDataNode
	// ProcessingInstructionNode holds a processing instruction.
	ProcessingInstructionNode
)

// Node is one node of the built document tree.
type Node struct {
	Type NodeType

	// ElementNode
	Name        string
	Attributes  []token.Attribute
	SelfClosing bool

	// TextNode, CommentNode, CDataNode: Data.
	// ProcessingInstructionNode: Target and Data (content).
	Target string
	Data   string

	Start, End token.Position

	Parent   *Node
	Children []*Node
}

// AppendChild appends c to n's children and sets c's parent to n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// Document is the result of parsing one XML document: its root
// element, the leading declaration and doctype if present, and any
// comments or processing instructions found outside the root element
// (the prolog and epilog miscellany XML permits).
type Document struct {
	Declaration *token.Token
	Doctype     *token.Token
	Root        *Node
	Prolog      []*Node
	Epilog      []*Node
}

// ParseError reports a tree-construction failure: a mismatched or
// unclosed tag, or more than one root element. Lexical failures
// surface as *tokenizer.Error instead and are never wrapped here.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func newParseError(pos token.Position, format string, args ...interface{}) *ParseError {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Parse reads a complete XML document from r and builds its tree.
// entities, if nil, defaults to the five predefined XML entities.
func Parse(r io.Reader, entities *entity.Table) (*Document, error) {
	return build(tokenizer.New(source.New(r), entities))
}

// ParseString is the string convenience form of Parse.
func ParseString(s string, entities *entity.Table) (*Document, error) {
	return build(tokenizer.New(source.NewString(s), entities))
}

// build drains tz, constructing a Document via a stack of
// in-progress element nodes. The stack discipline mirrors a
// recursive-descent tree build without the recursion: each OpenTag
// pushes, each CloseTag pops and validates the match, and a lone
// top-level element becomes Root.
func build(tz *tokenizer.Tokenizer) (*Document, error) {
	doc := &Document{}

	var stack []*Node
	var text *Node // run of Character tokens currently being accumulated

	outside := func(n *Node) {
		if doc.Root == nil {
			doc.Prolog = append(doc.Prolog, n)
		} else {
			doc.Epilog = append(doc.Epilog, n)
		}
	}

	flushText := func() {
		if text == nil {
			return
		}
		if len(stack) > 0 {
			stack[len(stack)-1].AppendChild(text)
		} else {
			outside(text)
		}
		text = nil
	}

	appendNode := func(n *Node) {
		flushText()
		if len(stack) > 0 {
			stack[len(stack)-1].AppendChild(n)
			return
		}
		outside(n)
	}

	for {
		tok, err := tz.NextToken()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case token.Character:
			if text == nil {
				text = &Node{Type: TextNode, Start: tok.Start}
			}
			text.Data += string(tok.Char)
			text.End = tok.End

		case token.CData:
			flushText()
			appendNode(&Node{Type: CDataNode, Data: tok.Text, Start: tok.Start, End: tok.End})

		case token.Comment:
			flushText()
			appendNode(&Node{Type: CommentNode, Data: tok.Text, Start: tok.Start, End: tok.End})

		case token.ProcessingInstruction:
			flushText()
			appendNode(&Node{Type: ProcessingInstructionNode, Target: tok.Target, Data: tok.Text, Start: tok.Start, End: tok.End})

		case token.Declaration:
			if doc.Declaration != nil || doc.Doctype != nil || doc.Root != nil || len(stack) > 0 {
				return nil, newParseError(tok.Start, "the XML declaration must be the first thing in the document")
			}
			t := tok
			doc.Declaration = &t

		case token.Doctype:
			flushText()
			if doc.Doctype != nil || doc.Root != nil || len(stack) > 0 {
				return nil, newParseError(tok.Start, "at most one DOCTYPE is allowed, before the root element")
			}
			t := tok
			doc.Doctype = &t

		case token.OpenTag:
			flushText()
			n := &Node{
				Type:        ElementNode,
				Name:        tok.Name,
				Attributes:  tok.Attributes,
				SelfClosing: tok.SelfClosing,
				Start:       tok.Start,
				End:         tok.End,
			}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, newParseError(tok.Start, "a document may have only one root element")
				}
				doc.Root = n
			} else {
				stack[len(stack)-1].AppendChild(n)
			}
			if !tok.SelfClosing {
				stack = append(stack, n)
			}

		case token.CloseTag:
			flushText()
			if len(stack) == 0 {
				return nil, newParseError(tok.Start, "unexpected closing tag </%s>", tok.Name)
			}
			open := stack[len(stack)-1]
			if open.Name != tok.Name {
				return nil, newParseError(tok.Start, "mismatched closing tag: expected </%s>, got </%s>", open.Name, tok.Name)
			}
			open.End = tok.End
			stack = stack[:len(stack)-1]

		case token.EndOfFile:
			flushText()
			if len(stack) > 0 {
				unclosed := stack[len(stack)-1]
				return nil, newParseError(unclosed.Start, "unclosed tag <%s>", unclosed.Name)
			}
			if doc.Root == nil {
				return nil, newParseError(tok.Start, "document has no root element")
			}
			return doc, nil
		}
	}
}

