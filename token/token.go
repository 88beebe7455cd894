// Package token defines the token variants produced by the xmltok
// tokenizer: character data, CDATA sections, comments, the XML
// declaration, processing instructions, DOCTYPE, start/end tags, and
// end-of-file.
package token

// Position records a location in the source text.
type Position struct {
	Line   int
	Column int
}

// Kind identifies which of the token variants a Token holds.
type Kind int

const (
	// Character holds a single Unicode scalar value of character data.
	Character Kind = iota
	// CData holds the text payload of a CDATA section.
	CData
	// Comment holds the text payload of a comment.
	Comment
	// Declaration holds the XML declaration's pseudo-attributes.
	Declaration
	// ProcessingInstruction holds a processing instruction's target and content.
	ProcessingInstruction
	// Doctype holds a DOCTYPE's name and optional external identifiers.
	Doctype
	// OpenTag holds a start tag, its attributes, and its self-closing flag.
	OpenTag
	// CloseTag holds an end tag's name.
	CloseTag
	// EndOfFile marks the end of the token stream. It has no fields and,
	// once emitted, is emitted again on every subsequent call.
	EndOfFile
)

// Standalone is the tri-state value of a Declaration's standalone
// pseudo-attribute.
type Standalone int

const (
	StandaloneUnspecified Standalone = iota
	StandaloneYes
	StandaloneNo
)

// Attribute is a single (name, value) pair on an OpenTag. Order is
// significant and preserved as encountered.
type Attribute struct {
	Name  string
	Value string
}

// Token is a tagged union of all token variants. Only the fields
// relevant to Kind are meaningful; the rest hold their zero value.
type Token struct {
	Kind  Kind
	Start Position
	End   Position

	// Character
	Char rune

	// CData, Comment: Text. ProcessingInstruction: Content reuses Text.
	Text string

	// Declaration
	Version     string
	Encoding    string
	HasEncoding bool
	Standalone  Standalone

	// ProcessingInstruction
	Target string

	// Doctype, OpenTag, CloseTag: Name. Doctype only: the IDs below.
	Name        string
	PublicID    string
	HasPublicID bool
	SystemID    string
	HasSystemID bool

	// OpenTag
	Attributes  []Attribute
	SelfClosing bool
}

// String renders a compact, human-readable summary of the token,
// useful for test fixtures and the xmltok -dump CLI.
func (t Token) String() string {
	switch t.Kind {
	case Character:
		return "Character(" + string(t.Char) + ")"
	case CData:
		return "CData(" + t.Text + ")"
	case Comment:
		return "Comment(" + t.Text + ")"
	case Declaration:
		return "Declaration(version=" + t.Version + ")"
	case ProcessingInstruction:
		return "ProcessingInstruction(" + t.Target + ")"
	case Doctype:
		return "Doctype(" + t.Name + ")"
	case OpenTag:
		name := t.Name
		if t.SelfClosing {
			name += "/"
		}
		return "OpenTag(" + name + ")"
	case CloseTag:
		return "CloseTag(" + t.Name + ")"
	case EndOfFile:
		return "EndOfFile"
	default:
		return "Unknown"
	}
}
