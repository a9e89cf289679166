/*
Package pegx is a parsing expression grammar (PEG) combinator runtime.

Consists of subpackages:
  - parser: immutable parse state, two-variant parse result, stop reasons, and combinators
    (sequencing, repetition, ordered choice, lookahead, rule events);
  - helpers: ready-made leaf parsers for common literal shapes (bracketed lists, quoted strings,
    comments, escapes, colors, numbers);
  - charset: three-level bitmap tries for Unicode character class membership;
  - pattern: regular expression patterns usable by parser.State.MatchPattern;
  - source: named source text with line and column lookup for diagnostics;
  - trace: observers for rule events (recording, logging, farthest failure tracking);
  - triegen, cmd/pegxgen: generator converting character set configuration to Go or JSON trie tables.

Typical usage is:

1. Write one function per grammar rule with the signature func(parser.State) parser.Result[T],
combining primitive matchers of parser.State with combinators of the parser package.

2. Use helpers and charset for common token shapes instead of writing them by hand.

3. Call parser.Parse (or parser.ParseSource for positioned errors) with the top rule.
*/
package pegx

import (
	"errors"
	"fmt"
)

// Error code ranges reserved for subpackages, up to 99 codes each.
const (
	StopErrors      = 1   // parser: StopErrors + stop reason kind
	CharsetErrors   = 101 // charset
	GeneratorErrors = 201 // triegen, cmd/pegxgen
)

// Error is returned by pegx subpackages. Errors tied to source text carry its name and position.
type Error struct {
	Code int

	// Message is the full text, including source name and position if known.
	Message string

	SourceName string

	// Line and Col are 1-based, 0 if unknown. Col counts code points.
	Line, Col int

	// Width is the number of code points to highlight starting at Col, 0 if unknown.
	Width int
}

// SourcePos supplies error position; source.Pos implements it.
type SourcePos interface {
	SourceName() string
	Line() int
	Col() int
}

// NewError creates Error; position suffix is appended to msg when name, line, and col are all set.
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{Code: code, Message: msg, SourceName: name, Line: line, Col: col}
}

func (e *Error) Error() string {
	return e.Message
}

// FormatError creates positionless Error, msg is a format string if params are given.
func FormatError(code int, msg string, params ...any) *Error {
	return FormatErrorPos(nil, code, msg, params...)
}

// FormatErrorPos creates Error positioned at pos, nil pos means no position.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	if pos == nil {
		return NewError(code, msg, "", 0, 0)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// FormatErrorSpan is FormatErrorPos highlighting width code points.
func FormatErrorSpan(pos SourcePos, width, code int, msg string, params ...any) *Error {
	e := FormatErrorPos(pos, code, msg, params...)
	e.Width = width
	return e
}

// ErrorCode returns the code of the first error in e's chain that is *Error
// or has Code() int method (parser.StopReason), 0 if there is none.
func ErrorCode(e error) int {
	var pe *Error
	if errors.As(e, &pe) {
		return pe.Code
	}

	var ce interface{ Code() int }
	if errors.As(e, &ce) {
		return ce.Code()
	}
	return 0
}
