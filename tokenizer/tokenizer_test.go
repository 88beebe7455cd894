package tokenizer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/nilxml/xmltok/source"
	"github.com/nilxml/xmltok/token"
)

// formatToken renders a token as a single deterministic line for
// comparison against a fixture's expected token listing.
func formatToken(tok token.Token) string {
	switch tok.Kind {
	case token.Character:
		return fmt.Sprintf("Character(%q)", tok.Char)
	case token.CData:
		return fmt.Sprintf("CData(%q)", tok.Text)
	case token.Comment:
		return fmt.Sprintf("Comment(%q)", tok.Text)
	case token.Declaration:
		return fmt.Sprintf("Declaration(version=%q encoding=%q hasEncoding=%t standalone=%d)",
			tok.Version, tok.Encoding, tok.HasEncoding, tok.Standalone)
	case token.ProcessingInstruction:
		return fmt.Sprintf("ProcessingInstruction(%q, %q)", tok.Target, tok.Text)
	case token.Doctype:
		return fmt.Sprintf("Doctype(name=%q publicID=%q hasPublicID=%t systemID=%q hasSystemID=%t)",
			tok.Name, tok.PublicID, tok.HasPublicID, tok.SystemID, tok.HasSystemID)
	case token.OpenTag:
		return fmt.Sprintf("OpenTag(%s, attrs=%v, selfClosing=%t)", tok.Name, tok.Attributes, tok.SelfClosing)
	case token.CloseTag:
		return fmt.Sprintf("CloseTag(%s)", tok.Name)
	case token.EndOfFile:
		return "EndOfFile"
	default:
		return "Unknown"
	}
}

// tokenizeAll drains a Tokenizer, formatting each token as it goes. It
// stops at the first error (returning the lines produced so far) or
// after EndOfFile.
func tokenizeAll(input string) ([]string, error) {
	tz := New(source.NewString(input), nil)
	var lines []string
	for {
		tok, err := tz.NextToken()
		if err != nil {
			return lines, err
		}
		lines = append(lines, formatToken(tok))
		if tok.Kind == token.EndOfFile {
			return lines, nil
		}
	}
}

func parseFixture(filename string) (string, []string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", nil, err
	}
	archive := txtar.Parse(data)

	var input string
	var expected []string
	for _, f := range archive.Files {
		switch f.Name {
		case "input.xml":
			input = strings.TrimSuffix(string(f.Data), "\n")
		case "tokens.txt":
			lines := strings.TrimSpace(string(f.Data))
			if lines != "" {
				expected = strings.Split(lines, "\n")
			}
		}
	}
	return input, expected, nil
}

// TestTokenizerFixtures runs every testdata/*.txtar fixture: each
// supplies an input.xml document and the tokens.txt listing of
// formatToken lines it must produce in order.
func TestTokenizerFixtures(t *testing.T) {
	const dir = "testdata"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Skipf("fixture directory %s does not exist", dir)
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".txtar") {
			return nil
		}

		relPath, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			relPath = filepath.Base(path)
		}

		t.Run(relPath, func(t *testing.T) {
			input, expected, err := parseFixture(path)
			if err != nil {
				t.Fatalf("parsing fixture: %v", err)
			}
			got, err := tokenizeAll(input)
			if err != nil {
				t.Fatalf("unexpected tokenizer error: %v", err)
			}
			if !reflect.DeepEqual(got, expected) {
				t.Errorf("token mismatch:\nwant:\n%s\n\ngot:\n%s",
					strings.Join(expected, "\n"), strings.Join(got, "\n"))
			}
		})
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", dir, err)
	}
}

// TestBoundaryErrors covers the named-error boundary cases from the
// module's test matrix: each input must fail tokenization with the
// specific ErrorKind named, not merely "some error".
func TestBoundaryErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"duplicate attribute", `<x a="1" a="2"/>`, ErrUniqueAttribute},
		{"lt in attribute value", `<x a="<"/>`, ErrLtInAttributeValue},
		{"pi target xml", `<?xml?>`, ErrInvalidPI},
		{"invalid numeric char ref", `&#xFFFE;`, ErrCharacterReferenceInvalidNumber},
		{"bare cdata close in data", `]]>`, ErrInvalidCharData},
		{"undefined markup declaration", `<!BOGUS>`, ErrUndefinedMarkupDeclaration},
		{"unterminated comment", `<!--hi`, ErrInvalidComment},
		{"invalid start tag char", `<1a/>`, ErrInvalidStartTag},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tokenizeAll(tc.input)
			if err == nil {
				t.Fatalf("expected error %s, got none", tc.kind)
			}
			xerr, ok := err.(*Error)
			if !ok {
				t.Fatalf("expected *tokenizer.Error, got %T (%v)", err, err)
			}
			if xerr.Kind != tc.kind {
				t.Errorf("expected kind %s, got %s", tc.kind, xerr.Kind)
			}
		})
	}
}

// TestBareDoubleHyphenInComment documents the explicitly-permitted
// boundary behavior: a "--" run mid-comment is only terminal when
// immediately followed by '>'.
func TestBareDoubleHyphenInComment(t *testing.T) {
	got, err := tokenizeAll(`<!-- -- -->`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{`Comment(" -- ")`, "EndOfFile"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
}

// TestEndOfFileRepeats confirms that once EndOfFile is reached,
// further calls to NextToken keep returning it.
func TestEndOfFileRepeats(t *testing.T) {
	tz := New(source.NewString(`<a/>`), nil)
	for i := 0; i < 2; i++ {
		if _, err := tz.NextToken(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		tok, err := tz.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind != token.EndOfFile {
			t.Fatalf("expected EndOfFile, got %v", tok)
		}
	}
}
