package tokenizer

import (
	"fmt"

	"github.com/nilxml/xmltok/token"
)

// ErrorKind names a distinct well-formedness failure the tokenizer can
// report. Every error the tokenizer returns is fatal to the current
// tokenization: after one is returned, the tokenizer must not be
// reused (its internal state is unspecified).
type ErrorKind int

const (
	// ErrEOF means the input ended while a token was still being scanned.
	ErrEOF ErrorKind = iota
	ErrInvalidStartTag
	ErrInvalidEndTag
	ErrInvalidName
	ErrInvalidAttribute
	ErrUniqueAttribute
	ErrLtInAttributeValue
	ErrInvalidCharData
	ErrUndefinedMarkupDeclaration
	ErrInvalidComment
	ErrInvalidPI
	ErrXmlDeclarationInvalid
	ErrDoctypeInvalid
	ErrInvalidPubId
	ErrCharacterReferenceNotTerminated
	ErrCharacterReferenceInvalidNumber
	ErrCharacterReferenceInvalidCode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrEOF:
		return "EOF"
	case ErrInvalidStartTag:
		return "InvalidStartTag"
	case ErrInvalidEndTag:
		return "InvalidEndTag"
	case ErrInvalidName:
		return "InvalidName"
	case ErrInvalidAttribute:
		return "InvalidAttribute"
	case ErrUniqueAttribute:
		return "UniqueAttribute"
	case ErrLtInAttributeValue:
		return "LtInAttributeValue"
	case ErrInvalidCharData:
		return "InvalidCharData"
	case ErrUndefinedMarkupDeclaration:
		return "UndefinedMarkupDeclaration"
	case ErrInvalidComment:
		return "InvalidComment"
	case ErrInvalidPI:
		return "InvalidPI"
	case ErrXmlDeclarationInvalid:
		return "XmlDeclarationInvalid"
	case ErrDoctypeInvalid:
		return "DoctypeInvalid"
	case ErrInvalidPubId:
		return "InvalidPubId"
	case ErrCharacterReferenceNotTerminated:
		return "CharacterReferenceNotTerminated"
	case ErrCharacterReferenceInvalidNumber:
		return "CharacterReferenceInvalidNumber"
	case ErrCharacterReferenceInvalidCode:
		return "CharacterReferenceInvalidCode"
	default:
		return "Unknown"
	}
}

// Error is the typed error the tokenizer returns for every
// well-formedness failure. Kind lets callers distinguish the failure
// programmatically rather than string-matching Error().
type Error struct {
	Kind    ErrorKind
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Pos.Line, e.Pos.Column, e.Kind, e.Message)
}

func (t *Tokenizer) errorf(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{
		Kind:    kind,
		Pos:     t.src.Position(),
		Message: fmt.Sprintf(format, args...),
	}
}
