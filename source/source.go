// Package source implements the character source contract the
// tokenizer depends on (§6.1 of the tokenizer specification): a
// buffered, rewindable reader over already-decoded Unicode text.
//
// The tokenizer never constructs a Source itself and never reaches
// into its internals; it only calls Current, Advance, ContinuesWith,
// and Position.
package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/nilxml/xmltok/token"
)

const defaultReadBufferSize = 4 << 10

// Option configures a Source created by New or NewString.
type Option func(*options)

type options struct {
	readBufferSize int
}

func defaultOptions() options {
	return options{readBufferSize: defaultReadBufferSize}
}

// WithReadBufferSize sets the bufio.Reader buffer size used when
// pulling more runes from the underlying io.Reader. Default: 4096.
func WithReadBufferSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.readBufferSize = size
		}
	}
}

// Source is a rewindable cursor over a rune stream decoded lazily
// from an io.Reader. Runes that have already been decoded are never
// discarded, so Back can rewind arbitrarily far into what has been
// read; the tokenizer itself peeks ahead with ContinuesWith and never
// calls Back.
type Source struct {
	reader *bufio.Reader
	runes  []rune
	pos    []token.Position // pos[i] is the position of runes[i]
	cursor int
	next   token.Position // position to assign to the next decoded rune
	eof    bool            // true once the underlying reader is exhausted
}

// New wraps r as a Source.
func New(r io.Reader, opts ...Option) *Source {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Source{
		reader: bufio.NewReaderSize(r, o.readBufferSize),
		next:   token.Position{Line: 1, Column: 1},
	}
}

// NewString wraps s as a Source. Convenience for tests and for hosts
// that already have the whole document decoded in memory.
func NewString(s string, opts ...Option) *Source {
	return New(strings.NewReader(s), opts...)
}

// ensure decodes runes from the underlying reader until at least n
// runes are available ahead of the cursor, or the reader is
// exhausted.
func (s *Source) ensure(n int) {
	for !s.eof && len(s.runes)-s.cursor < n {
		r, _, err := s.reader.ReadRune()
		if err != nil {
			s.eof = true
			break
		}
		s.runes = append(s.runes, r)
		s.pos = append(s.pos, s.next)
		if r == '\n' {
			s.next.Line++
			s.next.Column = 1
		} else {
			s.next.Column++
		}
	}
}

// Current returns the character under the cursor, or ok=false at
// end-of-file.
func (s *Source) Current() (rune, bool) {
	s.ensure(1)
	if s.cursor >= len(s.runes) {
		return 0, false
	}
	return s.runes[s.cursor], true
}

// Advance moves the cursor forward by n positions (default 1).
func (s *Source) Advance(n ...int) {
	step := argOrDefault(n, 1)
	s.ensure(step)
	s.cursor += step
	if s.cursor > len(s.runes) {
		s.cursor = len(s.runes)
	}
}

// Back moves the cursor backward by n positions (default 1). It never
// rewinds past the start of the stream.
func (s *Source) Back(n ...int) {
	step := argOrDefault(n, 1)
	s.cursor -= step
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// GetNext advances the cursor by one and returns the new current
// character.
func (s *Source) GetNext() (rune, bool) {
	s.Advance()
	return s.Current()
}

// ContinuesWith reports whether the characters starting at the
// cursor (inclusive) match literal, exactly when caseSensitive is true
// and ignoring ASCII letter case when it is false. The cursor is left
// unmoved whether or not the literal matches.
func (s *Source) ContinuesWith(literal string, caseSensitive bool) bool {
	want := []rune(literal)
	s.ensure(len(want))
	if len(s.runes)-s.cursor < len(want) {
		return false
	}
	for i, w := range want {
		got := s.runes[s.cursor+i]
		if caseSensitive {
			if got != w {
				return false
			}
			continue
		}
		if toUpperASCII(got) != toUpperASCII(w) {
			return false
		}
	}
	return true
}

// Position returns the position of the character under the cursor. At
// end-of-file it returns the position immediately following the last
// decoded character.
func (s *Source) Position() token.Position {
	if s.cursor < len(s.pos) {
		return s.pos[s.cursor]
	}
	return s.next
}

func argOrDefault(n []int, def int) int {
	if len(n) == 0 {
		return def
	}
	return n[0]
}

func toUpperASCII(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
