package sexp

import (
	"fmt"
	"strings"
	"unicode"
)

// Position is a location in a source text.
type Position struct {
	Source string // File name or other label, may be empty
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// String returns "source:line:column", or "line:column" without a source.
func (p Position) String() string {
	if !p.IsValid() {
		return "<unknown>"
	}
	if p.Source == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Column)
}

// IsValid returns true if the position has line information.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// ReadError reports malformed source text.
type ReadError struct {
	Position Position
	Message  string
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

type tokenKind int

const (
	tokenOpen tokenKind = iota
	tokenClose
	tokenDot
	tokenAtom
	tokenEOF
)

type token struct {
	kind tokenKind
	text string
	pos  Position
}

// reader is a small recursive-descent reader over a token stream.
type reader struct {
	src    []rune
	source string
	off    int
	line   int
	col    int
	peeked *token
}

func newReader(src, source string) *reader {
	return &reader{src: []rune(src), source: source, line: 1, col: 1}
}

// Read parses exactly one tree from src.
// Trailing content other than whitespace and comments is an error.
func Read(src string) (Value, error) {
	return ReadSource(src, "")
}

// ReadSource is Read with a source label used in error positions.
func ReadSource(src, source string) (Value, error) {
	r := newReader(src, source)
	tok := r.peek()
	if tok.kind == tokenEOF {
		return nil, &ReadError{Position: tok.pos, Message: "empty input"}
	}
	v, err := r.readValue()
	if err != nil {
		return nil, err
	}
	if tok := r.next(); tok.kind != tokenEOF {
		return nil, &ReadError{Position: tok.pos, Message: fmt.Sprintf("unexpected %q after expression", tok.text)}
	}
	return v, nil
}

// ReadAll parses every top-level tree in src, in order.
func ReadAll(src string) ([]Value, error) {
	return ReadAllSource(src, "")
}

// ReadAllSource is ReadAll with a source label used in error positions.
func ReadAllSource(src, source string) ([]Value, error) {
	r := newReader(src, source)
	var out []Value
	for r.peek().kind != tokenEOF {
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *reader) readValue() (Value, error) {
	tok := r.next()
	switch tok.kind {
	case tokenAtom:
		return Atom{Name: tok.text}, nil
	case tokenOpen:
		return r.readList(tok.pos)
	case tokenClose:
		return nil, &ReadError{Position: tok.pos, Message: "unexpected ')'"}
	case tokenDot:
		return nil, &ReadError{Position: tok.pos, Message: "unexpected '.' outside a list"}
	default:
		return nil, &ReadError{Position: tok.pos, Message: "unexpected end of input"}
	}
}

// readList reads list elements after an opening parenthesis.
func (r *reader) readList(open Position) (Value, error) {
	var items []Value
	var tail Value = Nil
	for {
		tok := r.peek()
		switch tok.kind {
		case tokenEOF:
			return nil, &ReadError{Position: open, Message: "unclosed '('"}
		case tokenClose:
			r.next()
			out := tail
			for i := len(items) - 1; i >= 0; i-- {
				out = Pair{Head: items[i], Tail: out}
			}
			return out, nil
		case tokenDot:
			r.next()
			if len(items) == 0 {
				return nil, &ReadError{Position: tok.pos, Message: "'.' must follow at least one element"}
			}
			v, err := r.readValue()
			if err != nil {
				return nil, err
			}
			if closeTok := r.peek(); closeTok.kind != tokenClose {
				return nil, &ReadError{Position: closeTok.pos, Message: "expected ')' after dotted tail"}
			}
			tail = v
		default:
			v, err := r.readValue()
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
	}
}

func (r *reader) peek() token {
	if r.peeked == nil {
		tok := r.scan()
		r.peeked = &tok
	}
	return *r.peeked
}

func (r *reader) next() token {
	tok := r.peek()
	r.peeked = nil
	return tok
}

func (r *reader) scan() token {
	r.skipSpace()
	pos := Position{Source: r.source, Line: r.line, Column: r.col}
	if r.off >= len(r.src) {
		return token{kind: tokenEOF, pos: pos}
	}

	switch ch := r.src[r.off]; ch {
	case '(', '[':
		r.advance()
		return token{kind: tokenOpen, text: string(ch), pos: pos}
	case ')', ']':
		r.advance()
		return token{kind: tokenClose, text: string(ch), pos: pos}
	}

	start := r.off
	for r.off < len(r.src) && !isDelimiter(r.src[r.off]) {
		r.advance()
	}
	text := string(r.src[start:r.off])
	if text == "." {
		return token{kind: tokenDot, text: text, pos: pos}
	}
	return token{kind: tokenAtom, text: text, pos: pos}
}

// skipSpace consumes whitespace and ';' line comments.
func (r *reader) skipSpace() {
	for r.off < len(r.src) {
		ch := r.src[r.off]
		switch {
		case ch == ';':
			for r.off < len(r.src) && r.src[r.off] != '\n' {
				r.advance()
			}
		case unicode.IsSpace(ch):
			r.advance()
		default:
			return
		}
	}
}

func (r *reader) advance() {
	if r.src[r.off] == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	r.off++
}

func isDelimiter(ch rune) bool {
	return unicode.IsSpace(ch) || strings.ContainsRune("()[];", ch)
}
